package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/dstk-geocoder/pkg/geocode/mocks"
)

const (
	lyonIP      = "81.220.239.218"
	lyonIPURL   = "http://www.datasciencetoolkit.org/ip2coordinates/81.220.239.218"
	simiAddress = "2543 Graystone Place, Simi Valley, CA 93065"
	simiURL     = "http://www.datasciencetoolkit.org/street2coordinates/2543+Graystone+Place%2C+Simi+Valley%2C+CA+93065"

	// Recorded ip2coordinates response.
	lyonIPResponse = `{"81.220.239.218": {
		"dma_code": 0,
		"latitude": 45.75,
		"country_code3": "FRA",
		"area_code": 0,
		"longitude": 4.84999990463257,
		"country_name": "France",
		"postal_code": "",
		"region": "B9",
		"locality": "Lyon",
		"country_code": "FR"
	}}`

	// Recorded street2coordinates response.
	simiResponse = `{"2543 Graystone Place, Simi Valley, CA 93065": {
		"country_code3": "USA",
		"latitude": 34.280874,
		"country_name": "United States",
		"longitude": -118.766282,
		"street_address": "2543 Graystone Pl",
		"region": "CA",
		"confidence": 1.0,
		"street_number": "2543",
		"locality": "Simi Valley",
		"street_name": "Graystone Pl",
		"fips_county": "06111",
		"country_code": "US"
	}}`
)

// newUnusedTransport returns a transport that fails the test if it is called.
func newUnusedTransport(t *testing.T) *mocks.MockTransport {
	t.Helper()
	tr := mocks.NewMockTransport(t)
	t.Cleanup(func() { tr.AssertNotCalled(t, "Get", mock.Anything, mock.Anything) })
	return tr
}

func TestDataScienceToolkit_Name(t *testing.T) {
	p := NewDataScienceToolkit(newUnusedTransport(t))
	assert.Equal(t, "data_science_toolkit", p.Name())
}

func TestDataScienceToolkit_GeocodeEmpty(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		p := NewDataScienceToolkit(newUnusedTransport(t))
		result, err := p.Geocode(context.Background(), q)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, IsUnsupportedOperation(err), "query=%q", q)
		assert.Equal(t, "The DataScienceToolkit provider does not support empty addresses.", err.Error())
	}
}

func TestDataScienceToolkit_GeocodeIPv6(t *testing.T) {
	for _, q := range []string{"::ffff:88.188.221.14", "::1", "2001:db8::1"} {
		p := NewDataScienceToolkit(newUnusedTransport(t))
		_, err := p.Geocode(context.Background(), q)

		require.Error(t, err)
		assert.True(t, IsUnsupportedOperation(err), "query=%q", q)
		assert.Equal(t, "The DataScienceToolkit provider does not support IPv6 addresses.", err.Error())
	}
}

func TestDataScienceToolkit_GeocodeLocalhostIPv4(t *testing.T) {
	p := NewDataScienceToolkit(newUnusedTransport(t))
	result, err := p.Geocode(context.Background(), "127.0.0.1")

	require.NoError(t, err)
	require.Len(t, result, 1)

	loc := result[0]
	assert.Nil(t, loc.Latitude)
	assert.Nil(t, loc.Longitude)
	assert.Nil(t, loc.Zipcode)
	assert.Nil(t, loc.Timezone)
	assert.Nil(t, loc.City)
	assert.Nil(t, loc.Region)
	assert.Nil(t, loc.County)
	assert.Equal(t, map[string]any{"locality": "localhost", "country": "localhost"}, loc.Fields())

	out, err := json.Marshal(loc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"locality":"localhost","country":"localhost"}`, string(out))
}

func TestDataScienceToolkit_GeocodeReservedIPv4(t *testing.T) {
	for _, q := range []string{"10.0.0.1", "192.168.1.20", "172.16.4.4", "169.254.0.1", "0.0.0.0"} {
		p := NewDataScienceToolkit(newUnusedTransport(t))
		result, err := p.Geocode(context.Background(), q)

		require.NoError(t, err, "query=%s", q)
		require.Len(t, result, 1)
		assert.Equal(t, map[string]any{"locality": "localhost", "country": "localhost"}, result[0].Fields())
	}
}

func TestDataScienceToolkit_GeocodeIPv4NullContent(t *testing.T) {
	for _, body := range []string{"", "  \n"} {
		tr := mocks.NewMockTransport(t)
		tr.On("Get", mock.Anything, lyonIPURL).Return(body, nil).Once()

		p := NewDataScienceToolkit(tr)
		_, err := p.Geocode(context.Background(), lyonIP)

		require.Error(t, err)
		assert.True(t, IsNoResult(err))
		assert.Equal(t, "Could not execute query "+lyonIPURL, err.Error())

		var ne *NoResultError
		require.True(t, errors.As(err, &ne))
		assert.Equal(t, lyonIPURL, ne.URL)
		assert.Equal(t, ReasonEmptyResponse, ne.Reason)
	}
}

func TestDataScienceToolkit_GeocodeAddressNullContent(t *testing.T) {
	const want = "http://www.datasciencetoolkit.org/street2coordinates/10+rue+de+baraban+lyon"

	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, want).Return("", nil).Once()

	p := NewDataScienceToolkit(tr)
	_, err := p.Geocode(context.Background(), "10 rue de baraban lyon")

	require.Error(t, err)
	assert.True(t, IsNoResult(err))
	assert.Equal(t, "Could not execute query "+want, err.Error())
}

func TestDataScienceToolkit_GeocodeTransportError(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, lyonIPURL).Return("", assert.AnError).Once()

	p := NewDataScienceToolkit(tr)
	_, err := p.Geocode(context.Background(), lyonIP)

	require.Error(t, err)
	assert.Equal(t, "Could not execute query "+lyonIPURL, err.Error())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDataScienceToolkit_GeocodeMalformedJSON(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, lyonIPURL).Return("<html>gateway timeout</html>", nil).Once()

	p := NewDataScienceToolkit(tr)
	_, err := p.Geocode(context.Background(), lyonIP)

	var ne *NoResultError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, ReasonMalformedResponse, ne.Reason)
	assert.Equal(t, "Could not execute query "+lyonIPURL, err.Error())
}

func TestDataScienceToolkit_GeocodeTrailingGarbage(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, lyonIPURL).
		Return(`{"81.220.239.218": {"latitude": 45.75}}<html>oops</html>`, nil).Once()

	result, err := NewDataScienceToolkit(tr).Geocode(context.Background(), lyonIP)

	assert.Nil(t, result)
	var ne *NoResultError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, ReasonMalformedResponse, ne.Reason)
}

func TestDataScienceToolkit_GeocodeFlatRecordWithoutCoordinates(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, lyonIPURL).
		Return(`{"city":"Lyon","country_name":"France","country_code":"FR","timezone":"Europe/Paris"}`, nil).Once()

	result, err := NewDataScienceToolkit(tr).Geocode(context.Background(), lyonIP)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Lyon", *result[0].City)
	assert.Equal(t, "Europe/Paris", *result[0].Timezone)
	assert.Nil(t, result[0].Latitude)
}

func TestDataScienceToolkit_GeocodeNullRecord(t *testing.T) {
	for _, body := range []string{`{"81.220.239.218": null}`, `{"81.220.239.218": {}}`, `{}`, `null`} {
		tr := mocks.NewMockTransport(t)
		tr.On("Get", mock.Anything, lyonIPURL).Return(body, nil).Once()

		p := NewDataScienceToolkit(tr)
		_, err := p.Geocode(context.Background(), lyonIP)

		var ne *NoResultError
		require.True(t, errors.As(err, &ne), "body=%s", body)
		assert.Equal(t, ReasonNotFound, ne.Reason)
	}
}

func TestDataScienceToolkit_GeocodeRealIPv4(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, lyonIPURL).Return(lyonIPResponse, nil).Once()

	p := NewDataScienceToolkit(tr)
	result, err := p.Geocode(context.Background(), lyonIP)

	require.NoError(t, err)
	require.Len(t, result, 1)

	loc := result[0]
	require.NotNil(t, loc.Latitude)
	require.NotNil(t, loc.Longitude)
	assert.InDelta(t, 45.75, *loc.Latitude, 0.01)
	assert.InDelta(t, 4.8499999046326, *loc.Longitude, 0.01)
	assert.Equal(t, "Lyon", *loc.City)
	assert.Equal(t, "France", *loc.Country)
	assert.Equal(t, "FR", *loc.CountryCode)
	assert.Equal(t, "B9", *loc.Region)
	assert.Nil(t, loc.Zipcode, "empty postal_code is omitted")
	assert.Nil(t, loc.County)
	assert.Nil(t, loc.Timezone)
}

func TestDataScienceToolkit_GeocodeRealAddress(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, simiURL).Return(simiResponse, nil).Once()

	p := NewDataScienceToolkit(tr)
	result, err := p.Geocode(context.Background(), simiAddress)

	require.NoError(t, err)
	require.Len(t, result, 1)

	loc := result[0]
	assert.InDelta(t, 34.280874, *loc.Latitude, 0.01)
	assert.InDelta(t, -118.766282, *loc.Longitude, 0.01)
	assert.Equal(t, "Simi Valley", *loc.City)
	assert.Equal(t, "United States", *loc.Country)
	assert.Equal(t, "US", *loc.CountryCode)
	assert.Equal(t, "CA", *loc.Region)
	assert.NotContains(t, loc.Fields(), "zipcode")
}

func TestDataScienceToolkit_GeocodeTrimsIPv4(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, lyonIPURL).Return(lyonIPResponse, nil).Once()

	p := NewDataScienceToolkit(tr)
	result, err := p.Geocode(context.Background(), "  "+lyonIP+" ")

	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestDataScienceToolkit_WithBaseURL(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.Anything, "http://dstk.internal:8080/ip2coordinates/"+lyonIP).Return(lyonIPResponse, nil).Once()

	p := NewDataScienceToolkit(tr, WithBaseURL("http://dstk.internal:8080/"))
	_, err := p.Geocode(context.Background(), lyonIP)
	require.NoError(t, err)
}

func TestDataScienceToolkit_Reverse(t *testing.T) {
	p := NewDataScienceToolkit(newUnusedTransport(t))
	result, err := p.Reverse(context.Background(), 1, 2)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsUnsupportedOperation(err))
	assert.Equal(t, "The DataScienceToolkit provider is not able to do reverse geocoding.", err.Error())
}

func TestDataScienceToolkit_ContextPassedToTransport(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	tr := mocks.NewMockTransport(t)
	tr.On("Get", mock.MatchedBy(func(c context.Context) bool {
		return c.Value(ctxKey{}) == "marker"
	}), lyonIPURL).Return(lyonIPResponse, nil).Once()

	p := NewDataScienceToolkit(tr)
	_, err := p.Geocode(ctx, lyonIP)
	require.NoError(t, err)
}
