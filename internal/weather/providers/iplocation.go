package providers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultIPLocationURL is the base of an ipapi.co compatible service.
const DefaultIPLocationURL = "https://ipapi.co"

// IPLocator implements location.IPLocator against an ipapi.co compatible service
// answering {"latitude": ..., "longitude": ...}.
type IPLocator struct {
	token   string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewIPLocator(client *http.Client, baseURL, token string) *IPLocator {
	if baseURL == "" {
		baseURL = DefaultIPLocationURL
	}
	return &IPLocator{
		token:   token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		circuit: newAnswerBreaker("ip-location"),
	}
}

// Locate resolves the caller recorded in ctx by location.WithClientIP. Private,
// loopback and missing addresses are looked up parameterless, which keys the
// answer to this server's own origin.
func (l *IPLocator) Locate(ctx context.Context) (weather.Coordinate, error) {
	u := l.baseURL + "/json/"
	if ip := publicIP(location.ClientIP(ctx)); ip != "" {
		u = l.baseURL + "/" + url.PathEscape(ip) + "/json/"
	}
	if l.token != "" {
		u += "?" + url.Values{"token": {l.token}}.Encode()
	}

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Error     bool     `json:"error"`
		Reason    string   `json:"reason"`
	}

	if err := getJSON(ctx, l.client, l.circuit, u, &payload); err != nil {
		if isStatusError(err) {
			return weather.Coordinate{}, fmt.Errorf("%w: %v", location.ErrUnavailable, err)
		}
		return weather.Coordinate{}, fmt.Errorf("%w: %v", location.ErrTransport, err)
	}

	if payload.Error || payload.Latitude == nil || payload.Longitude == nil {
		return weather.Coordinate{}, fmt.Errorf("%w: %s", location.ErrUnavailable, payload.Reason)
	}
	return weather.Coordinate{Lat: *payload.Latitude, Lng: *payload.Longitude}, nil
}

func publicIP(raw string) string {
	ip := net.ParseIP(raw)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
		return ""
	}
	return ip.String()
}
