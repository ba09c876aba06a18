package httpx

import (
	"fmt"
	"net/http"
)

// AuthBasicRoundTripper подписывает исходящие запросы HTTP basic auth
// учётными данными (Kaggle API не использует bearer-токены).
type AuthBasicRoundTripper struct {
	next     http.RoundTripper
	username string
	password string
}

func NewAuthBasicRoundTripper(
	next http.RoundTripper,
	username string,
	password string,
) AuthBasicRoundTripper {
	return AuthBasicRoundTripper{
		next:     next,
		username: username,
		password: password,
	}
}

func (rt AuthBasicRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(rt.username, rt.password)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
