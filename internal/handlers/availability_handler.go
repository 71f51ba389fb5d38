package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/httpresp"
	ucAvailability "github.com/bienestar-studio/studio-scheduler/internal/usecase/availability"
	ucBlock "github.com/bienestar-studio/studio-scheduler/internal/usecase/block"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	hoursUC       *ucAvailability.GetAvailableHours
	listBlocksUC  *ucBlock.ListBlocks
	createBlockUC *ucBlock.CreateBlock
	updateBlockUC *ucBlock.UpdateBlock
	deleteBlockUC *ucBlock.DeleteBlock
	deleteGroupUC *ucBlock.DeleteBlockGroup
}

func NewAvailabilityHandler(
	hoursUC *ucAvailability.GetAvailableHours,
	listBlocksUC *ucBlock.ListBlocks,
	createBlockUC *ucBlock.CreateBlock,
	updateBlockUC *ucBlock.UpdateBlock,
	deleteBlockUC *ucBlock.DeleteBlock,
	deleteGroupUC *ucBlock.DeleteBlockGroup,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		hoursUC:       hoursUC,
		listBlocksUC:  listBlocksUC,
		createBlockUC: createBlockUC,
		updateBlockUC: updateBlockUC,
		deleteBlockUC: deleteBlockUC,
		deleteGroupUC: deleteGroupUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBlockRequest struct {
	Date      string `json:"date" binding:"required"`
	EndDate   string `json:"end_date"`
	FullDay   bool   `json:"full_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

type UpdateBlockRequest struct {
	Date      string `json:"date"`
	FullDay   bool   `json:"full_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// ======================================================
// AVAILABLE HOURS
// ======================================================

func (h *AvailabilityHandler) GetAvailableHours(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "The provided date is not valid. Use YYYY-MM-DD.")
		return
	}

	hours, err := h.hoursUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.From(c, err, "failed_to_get_availability", "Could not compute available hours.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":            c.Param("date"),
		"available_hours": hours,
	})
}

// ======================================================
// BLOCKED SLOTS
// ======================================================

func (h *AvailabilityHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.listBlocksUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Could not load blocked slots.")
		return
	}
	httpresp.List(c, blocks)
}

func (h *AvailabilityHandler) CreateBlock(c *gin.Context) {
	userID, _ := actor(c)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	blocks, err := h.createBlockUC.Execute(c.Request.Context(), ucBlock.CreateBlockInput{
		ActorID:   userID,
		Date:      req.Date,
		EndDate:   req.EndDate,
		FullDay:   req.FullDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.From(c, err, "failed_to_create_block", "Could not create the blocked slot.")
		return
	}

	httpresp.Created(c, blocks)
}

func (h *AvailabilityHandler) UpdateBlock(c *gin.Context) {
	userID, _ := actor(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid blocked slot id.")
		return
	}

	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	block, err := h.updateBlockUC.Execute(c.Request.Context(), id, ucBlock.UpdateBlockInput{
		ActorID:   userID,
		Date:      req.Date,
		FullDay:   req.FullDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.From(c, err, "failed_to_update_block", "Could not update the blocked slot.")
		return
	}

	httpresp.OK(c, block)
}

func (h *AvailabilityHandler) DeleteBlock(c *gin.Context) {
	userID, _ := actor(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid blocked slot id.")
		return
	}

	if err := h.deleteBlockUC.Execute(c.Request.Context(), userID, id); err != nil {
		httperr.From(c, err, "failed_to_delete_block", "Could not delete the blocked slot.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Blocked slot deleted successfully"})
}

func (h *AvailabilityHandler) DeleteBlockGroup(c *gin.Context) {
	userID, _ := actor(c)

	groupID := c.Param("gid")
	if groupID == "" {
		httperr.BadRequest(c, "invalid_id", "Invalid block group id.")
		return
	}

	removed, err := h.deleteGroupUC.Execute(c.Request.Context(), userID, groupID)
	if err != nil {
		httperr.From(c, err, "failed_to_delete_block_group", "Could not delete the block period.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Block period deleted successfully",
		"removed": removed,
	})
}
