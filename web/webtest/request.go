package webtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/eventum/eventum/web/entity"
	"github.com/eventum/eventum/web/session"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type request struct {
	method  string
	role    string
	body    io.Reader
	header  http.Header
	query   url.Values
	cookies []*http.Cookie
	err     error
}

// RequestOption customises a RequestWithRole call.
type RequestOption func(*request)

func WithMethod(method string) RequestOption {
	return func(r *request) { r.method = method }
}

// WithRole selects the fixture role to authenticate as. A role that is not
// one of Roles() sends the request without an identity token.
func WithRole(role string) RequestOption {
	return func(r *request) { r.role = role }
}

// Anonymous is WithRole with a role no fixture user has.
func Anonymous() RequestOption {
	return WithRole("")
}

func WithBody(body io.Reader) RequestOption {
	return func(r *request) { r.body = body }
}

// WithJSON encodes v as the request body and sets the JSON content type.
func WithJSON(v any) RequestOption {
	return func(r *request) {
		data, err := json.Marshal(v)
		if err != nil {
			r.err = err
			return
		}
		r.body = bytes.NewReader(data)
		r.header.Set("Content-Type", "application/json")
	}
}

func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.header.Add(key, value) }
}

func WithQuery(key, value string) RequestOption {
	return func(r *request) { r.query.Add(key, value) }
}

func WithCookie(c *http.Cookie) RequestOption {
	return func(r *request) { r.cookies = append(r.cookies, c) }
}

// SessionCookies builds, through the app's session store, the session
// cookies of a fresh session holding role's identity token. Unknown roles
// yield no cookies.
func (h *Harness) SessionCookies(role string) ([]*http.Cookie, error) {
	token, ok := IdentityToken(role)
	if !ok {
		return nil, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := h.App.Store.New(req, h.App.Config.SessionName)
	if err != nil {
		return nil, err
	}
	s.Values[session.IdentityTokenKey] = token
	rec := httptest.NewRecorder()
	if err := h.App.Store.Save(req, rec, s); err != nil {
		return nil, err
	}
	return rec.Result().Cookies(), nil
}

// RequestWithRole serves a request for path through the app and returns the
// recorded response. It defaults to GET as DefaultRole. The role's session
// only exists on this request; nothing carries over to later requests.
func (h *Harness) RequestWithRole(path string, opts ...RequestOption) *httptest.ResponseRecorder {
	h.t.Helper()
	r := &request{
		method: http.MethodGet,
		role:   DefaultRole,
		header: http.Header{},
		query:  url.Values{},
	}
	for _, opt := range opts {
		opt(r)
	}
	require.NoError(h.t, r.err, "build request")

	req := httptest.NewRequest(r.method, path, r.body)
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if len(r.query) > 0 {
		q := req.URL.Query()
		for k, vs := range r.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	cookies, err := h.SessionCookies(r.role)
	require.NoError(h.t, err, "build session for role %q", r.role)
	for _, c := range append(cookies, r.cookies...) {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	h.App.Engine.ServeHTTP(w, req)
	return w
}

// DecodeMsg decodes an entity.Msg response, unmarshalling its obj into obj when obj is not nil.
func (h *Harness) DecodeMsg(w *httptest.ResponseRecorder, obj any) entity.Msg {
	h.t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Msg     string          `json:"msg"`
		Obj     json.RawMessage `json:"obj"`
	}
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &raw), "decode %q", w.Body.String())
	if obj != nil && len(raw.Obj) > 0 {
		require.NoError(h.t, json.Unmarshal(raw.Obj, obj), "decode obj %q", string(raw.Obj))
	}
	return entity.Msg{Success: raw.Success, Msg: raw.Msg, Obj: obj}
}
