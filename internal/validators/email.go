package validators

import (
	"net"
	"strings"
)

// EmailDomainResolves reports whether the address part after the last "@"
// is a domain that resolves, via MX records or a direct host lookup. It does
// not prove the mailbox exists, only that mail could be routed somewhere.
func EmailDomainResolves(email string) bool {
	host, ok := splitDomain(email)
	if !ok {
		return false
	}

	if ips, err := net.LookupIP(host); err == nil && len(ips) > 0 {
		return true
	}
	mx, err := net.LookupMX(host)
	return err == nil && len(mx) > 0
}

func splitDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "", false
	}
	host := email[at+1:]
	return host, host != ""
}
