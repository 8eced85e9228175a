package mapper

import (
	"strconv"
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

func parseID(element, value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &domain.MalformedResponseError{Element: element, Err: err}
	}
	return id, nil
}

// parseFlag accepts 1/0 and true/false; anything else is false.
func parseFlag(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

// trimAll never returns nil, so absent collections map to empty lists.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// splitTarget splits a scan TARGET on the ", " separator the API uses.
func splitTarget(target string) []string {
	target = strings.TrimSpace(target)
	if target == "" {
		return []string{}
	}
	parts := strings.Split(target, ",")
	return trimAll(parts)
}

func joinTarget(target []string) string {
	return strings.Join(target, ", ")
}
