package validators

import (
	"net"
	"strings"
)

// NormalizeEmail ramène l'adresse à la forme stockée en base.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailDomainValid vérifie que le domaine de l'adresse existe réellement
// (MX d'abord, A/AAAA en secours). Les rappels par courriel du spa partent
// vers cette adresse : un domaine mort est refusé dès la saisie.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsAny(domain, " \t") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
