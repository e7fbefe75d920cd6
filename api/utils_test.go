package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-tools/bcproxy/bigcommerce"
	"github.com/storefront-tools/bcproxy/conf"
)

const (
	testStoreHash = "abc123"
	testToken     = "admin-token"
	testProxyKey  = "s3cret"
)

func testConfig(upstreamURL string) *conf.Configuration {
	config := &conf.Configuration{}
	config.StoreHash = testStoreHash
	config.AccessToken = testToken
	config.APIURL = upstreamURL
	config.Timeout = 5 * time.Second
	config.Key = testProxyKey
	config.AllowOrigin = []string{"*"}
	config.CustomFields = []string{"status", "imported", "current_inventory"}
	config.CacheControl = "private, max-age=60"
	config.ShutdownTimeout = time.Second
	config.ApplyDefaults()
	return config
}

// fakeStore stands in for the store API. Products are looked up by id from
// products unless catalogBody overrides the response.
type fakeStore struct {
	orderStatus int
	orderBody   string

	catalogStatus int
	catalogBody   string
	products      map[int64]string

	orderCalls   int32
	catalogCalls int32

	mu           sync.Mutex
	catalogQuery map[string][]string
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Auth-Token") != testToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	prefix := "/stores/" + testStoreHash
	switch {
	case strings.HasPrefix(r.URL.Path, prefix+"/v2/orders/"):
		atomic.AddInt32(&s.orderCalls, 1)
		writeFake(w, s.orderStatus, s.orderBody)
	case r.URL.Path == prefix+"/v3/catalog/products":
		atomic.AddInt32(&s.catalogCalls, 1)
		s.mu.Lock()
		s.catalogQuery = r.URL.Query()
		s.mu.Unlock()
		if s.catalogBody != "" || s.catalogStatus != 0 {
			writeFake(w, s.catalogStatus, s.catalogBody)
			return
		}
		data := []json.RawMessage{}
		for _, raw := range strings.Split(r.URL.Query().Get("id:in"), ",") {
			id, _ := strconv.ParseInt(raw, 10, 64)
			if p, ok := s.products[id]; ok {
				data = append(data, json.RawMessage(p))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *fakeStore) query() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogQuery
}

func writeFake(w http.ResponseWriter, status int, body string) {
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// RouteTest runs requests through the full handler chain against a fake store.
type RouteTest struct {
	T      *testing.T
	Store  *fakeStore
	Config *conf.Configuration
	API    *API
}

func NewRouteTest(t *testing.T) *RouteTest {
	store := &fakeStore{products: map[int64]string{}}
	server := httptest.NewServer(store)
	t.Cleanup(server.Close)

	config := testConfig(server.URL)
	return &RouteTest{
		T:      t,
		Store:  store,
		Config: config,
		API:    NewAPI(config, bigcommerce.NewClient(&config.BigCommerceConfiguration)),
	}
}

func (r *RouteTest) Request(method, url string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.API.handler.ServeHTTP(w, req)
	return w
}

func (r *RouteTest) Get(url string) *httptest.ResponseRecorder {
	return r.Request(http.MethodGet, url, http.Header{proxyKeyHeader: []string{testProxyKey}})
}

// ------------------------------------------------------------------------------------------------
// validators
// ------------------------------------------------------------------------------------------------

func validateError(t *testing.T, code int, recorder *httptest.ResponseRecorder) map[string]interface{} {
	assert := assert.New(t)
	if code != recorder.Code {
		assert.Fail(fmt.Sprintf("code mismatch: expected %d vs actual %d", code, recorder.Code))
		return nil
	}

	errRsp := make(map[string]interface{})
	err := json.NewDecoder(recorder.Body).Decode(&errRsp)
	assert.Nil(err)

	errcode, exists := errRsp["code"]
	assert.True(exists)
	assert.EqualValues(code, errcode)

	_, exists = errRsp["error"]
	assert.True(exists)
	return errRsp
}

// ------------------------------------------------------------------------------------------------
// extractors
// ------------------------------------------------------------------------------------------------

func extractPayload(t *testing.T, code int, recorder *httptest.ResponseRecorder, what interface{}) {
	if recorder.Code == code {
		err := json.NewDecoder(recorder.Body).Decode(what)
		if !assert.NoError(t, err) {
			assert.FailNow(t, "Failed to extract body")
		}
	} else {
		assert.FailNow(t, "Unexpected code: ", recorder.Code)
	}
}
