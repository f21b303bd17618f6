package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// QueryBool lee un filtro booleano opcional (?active=true). nil = no enviado.
func QueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &b, nil
}
