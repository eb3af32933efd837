package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type fakeGeocoder struct {
	coord     weather.Coordinate
	err       error
	addresses []string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (weather.Coordinate, error) {
	g.addresses = append(g.addresses, address)
	return g.coord, g.err
}

type fakeLocator struct {
	coord weather.Coordinate
	err   error
	calls int
	ips   []string
}

func (l *fakeLocator) Locate(ctx context.Context) (weather.Coordinate, error) {
	l.calls++
	l.ips = append(l.ips, ClientIP(ctx))
	return l.coord, l.err
}

var (
	springfield = weather.Coordinate{Lat: 39.78, Lng: -89.65}
	ipOrigin    = weather.Coordinate{Lat: 34.05, Lng: -118.24}
	address     = Input{Kind: KindAddress, Street: "1 Main St", City: "Springfield", State: "IL"}
)

func TestResolveGeocodesAddress(t *testing.T) {
	geo := &fakeGeocoder{coord: springfield}
	ip := &fakeLocator{coord: ipOrigin}

	coord, err := NewResolver(geo, ip).Resolve(context.Background(), address)
	require.NoError(t, err)

	assert.Equal(t, springfield, coord)
	assert.Equal(t, []string{"1 Main St, Springfield, IL"}, geo.addresses)
	assert.Zero(t, ip.calls)
}

func TestResolveFallsBackToIPOnNoMatch(t *testing.T) {
	geo := &fakeGeocoder{err: ErrNoMatch}
	ip := &fakeLocator{coord: ipOrigin}

	ctx := WithClientIP(context.Background(), "8.8.8.8")
	coord, err := NewResolver(geo, ip).Resolve(ctx, address)
	require.NoError(t, err)

	assert.Equal(t, ipOrigin, coord)
	assert.Len(t, geo.addresses, 1)
	assert.Equal(t, 1, ip.calls)
	assert.Equal(t, []string{"8.8.8.8"}, ip.ips)
}

func TestResolveDoesNotFallBackOnTransportFailure(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("connection refused")}
	ip := &fakeLocator{coord: ipOrigin}

	_, err := NewResolver(geo, ip).Resolve(context.Background(), address)

	assert.ErrorIs(t, err, ErrTransport)
	assert.Zero(t, ip.calls)
}

func TestResolveAutoUsesOnlyIPLocator(t *testing.T) {
	geo := &fakeGeocoder{coord: springfield}
	ip := &fakeLocator{coord: ipOrigin}

	coord, err := NewResolver(geo, ip).Resolve(context.Background(), Input{Kind: KindAuto, Street: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, ipOrigin, coord)
	assert.Empty(t, geo.addresses)
	assert.Equal(t, 1, ip.calls)
}

func TestResolveValidatesBeforeAnyCall(t *testing.T) {
	geo := &fakeGeocoder{coord: springfield}
	ip := &fakeLocator{coord: ipOrigin}

	_, err := NewResolver(geo, ip).Resolve(context.Background(), Input{Kind: KindAddress, City: "Springfield"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "street", verr.Field)
	assert.Empty(t, geo.addresses)
	assert.Zero(t, ip.calls)
}

func TestResolveIPFailure(t *testing.T) {
	geo := &fakeGeocoder{err: ErrNoMatch}

	_, err := NewResolver(geo, &fakeLocator{err: errors.New("bad payload")}).Resolve(context.Background(), address)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewResolver(geo, &fakeLocator{err: ErrTransport}).Resolve(context.Background(), address)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "", ClientIP(context.Background()))
	assert.Equal(t, "1.2.3.4", ClientIP(WithClientIP(context.Background(), "1.2.3.4")))
}
