package delivery_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lgbarn/movetree-go/internal/delivery"
	"github.com/lgbarn/movetree-go/internal/study"
)

type envelope struct {
	Status int             `json:"Status"`
	Body   json.RawMessage `json:"Body"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zaptest.NewLogger(t).Sugar()
	reg := study.NewRegistry(study.NewMemoryStore(), log)
	h := delivery.NewStudyHandler(reg, log, 0)
	return &testServer{t: t, handler: delivery.NewRouter(h, log, time.Second)}
}

// do sends a request and decodes the envelope body into out when non-nil.
func (s *testServer) do(method, target, body string, out any) int {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(s.t, rec.Code, env.Status)
	if out != nil && len(env.Body) > 0 {
		require.NoError(s.t, json.Unmarshal(env.Body, out))
	}
	return rec.Code
}

func (s *testServer) create(body string) study.View {
	s.t.Helper()
	var view study.View
	require.Equal(s.t, http.StatusCreated, s.do(http.MethodPost, "/studies", body, &view))
	require.NotEmpty(s.t, view.ID)
	return view
}

func TestCreateAndGet(t *testing.T) {
	srv := newTestServer(t)
	created := srv.create(`{"moveText":"1. e4 (1... c5) e5"}`)
	assert.Equal(t, "0", created.Path)
	assert.Equal(t, -1, created.Ply)
	assert.Equal(t, "white", created.SideToMove)
	assert.Len(t, created.LegalMoves, 20)
	assert.Equal(t, "1. e4 (1... c5) e5", created.Tree.MoveText)

	var got study.View
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/studies/"+created.ID, "", &got))
	assert.Equal(t, created.ID, got.ID)

	var ids []string
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/studies", "", &ids))
	assert.Equal(t, []string{created.ID}, ids)
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "bad fen", body: `{"startFen":"not a fen"}`, status: http.StatusUnprocessableEntity},
		{name: "illegal movetext", body: `{"moveText":"1. e4 e4"}`, status: http.StatusUnprocessableEntity},
		{name: "unknown field", body: `{"moves":"1. e4"}`, status: http.StatusBadRequest},
		{name: "malformed json", body: `{`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			var resp delivery.ErrorResponse
			assert.Equal(t, tt.status, srv.do(http.MethodPost, "/studies", tt.body, &resp))
			assert.NotEmpty(t, resp.ErrorDescription)

			var ids []string
			srv.do(http.MethodGet, "/studies", "", &ids)
			assert.Empty(t, ids, "failed creation must not leave a study behind")
		})
	}
}

func TestPlayAndNavigate(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create("").ID
	base := "/studies/" + id

	var view study.View
	for _, move := range []string{"e4", "e5", "Nf3"} {
		require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/moves", `{"move":"`+move+`"}`, &view))
	}
	assert.Equal(t, 2, view.Ply)
	assert.Equal(t, "Nf3", view.Current)
	assert.Equal(t, "black", view.SideToMove)

	var nav struct {
		Moved bool        `json:"moved"`
		View  *study.View `json:"view"`
	}
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/navigate", `{"action":"back"}`, &nav))
	assert.True(t, nav.Moved)
	assert.Equal(t, "e5", nav.View.Current)

	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/navigate", `{"action":"start"}`, &nav))
	assert.True(t, nav.Moved)
	assert.Equal(t, -1, nav.View.Ply)
	assert.Equal(t, http.StatusConflict, srv.do(http.MethodPost, base+"/moves", `{"move":"d4"}`, nil),
		"the first move of the main line cannot branch")

	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/navigate", `{"action":"back"}`, &nav))
	assert.False(t, nav.Moved)

	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/navigate", `{"action":"end"}`, &nav))
	assert.Equal(t, "Nf3", nav.View.Current)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, base+"/navigate", `{"action":"sideways"}`, nil))

	// A new reply to e4 opens a variation.
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/goto", `{"path":"0","ply":0}`, &view))
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/moves", `{"move":"c5"}`, &view))
	assert.Equal(t, "0/0:1", view.Path)
	assert.Equal(t, "1. e4 (1... c5) e5 2. Nf3", view.Tree.MoveText)

	var resp delivery.ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, srv.do(http.MethodPost, base+"/moves", `{"move":"Ke3"}`, &resp))
	assert.NotEmpty(t, resp.ErrorDescription)
}

func TestGotoInvalidTarget(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(`{"moveText":"1. e4 e5"}`).ID
	base := "/studies/" + id

	tests := []struct {
		name string
		body string
	}{
		{name: "missing variation", body: `{"path":"0/0:1","ply":0}`},
		{name: "ply past end", body: `{"path":"0","ply":5}`},
		{name: "malformed path", body: `{"path":"root","ply":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv.do(http.MethodPost, base+"/goto", `{"path":"0","ply":1}`, nil)
			assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, base+"/goto", tt.body, nil))

			var view study.View
			srv.do(http.MethodGet, base, "", &view)
			assert.Equal(t, "0", view.Path)
			assert.Equal(t, -1, view.Ply, "failed jump returns the cursor to the start")
		})
	}
}

func TestAnnotate(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(`{"moveText":"1. e4 e5"}`).ID
	base := "/studies/" + id

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, base+"/annotate", `{"glyph":"!","comment":"x"}`, nil),
		"cursor before the first move")

	srv.do(http.MethodPost, base+"/goto", `{"path":"0","ply":0}`, nil)
	var view study.View
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/annotate", `{"glyph":"!","comment":"best by test"}`, &view))
	assert.Equal(t, "1. e4! {best by test} e5", view.Tree.MoveText)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, base+"/annotate", `{"glyph":"!!!"}`, nil))
}

func TestDrill(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(`{"moveText":"1. e4 e5 2. Nf3 Nc6"}`).ID
	base := "/studies/" + id

	var drill struct {
		Done  bool   `json:"done"`
		Move  string `json:"move"`
		Index int    `json:"index"`
	}
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, base+"/drill?side=black", "", &drill))
	assert.False(t, drill.Done)
	assert.Equal(t, "e5", drill.Move)
	assert.Equal(t, 1, drill.Index)

	srv.do(http.MethodPost, base+"/navigate", `{"action":"end"}`, nil)
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, base+"/drill?side=white", "", &drill))
	assert.True(t, drill.Done)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, base+"/drill?side=green", "", nil))
}

func TestImportResetDelete(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create("").ID
	base := "/studies/" + id

	var view study.View
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/import", `{"moveText":"1. d4 d5 (1... Nf6)"}`, &view))
	assert.Equal(t, "1. d4 d5 (1... Nf6)", view.Tree.MoveText)

	assert.Equal(t, http.StatusUnprocessableEntity, srv.do(http.MethodPost, base+"/import", `{"moveText":"1. d4 (("}`, nil))
	srv.do(http.MethodGet, base, "", &view)
	assert.Equal(t, "1. d4 d5 (1... Nf6)", view.Tree.MoveText, "failed import leaves the tree alone")

	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/reset", "", &view))
	assert.Equal(t, "", view.Tree.MoveText)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodDelete, base, "", nil))
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, base, "", nil))
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodDelete, base, "", nil))
}

func TestSnapshotRestore(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(`{"moveText":"1. e4 e5"}`).ID
	base := "/studies/" + id

	srv.do(http.MethodPost, base+"/goto", `{"path":"0","ply":1}`, nil)
	var snap study.Snapshot
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/snapshot", "", &snap))
	assert.Equal(t, "1. e4 e5", snap.MoveText)
	assert.Equal(t, 1, snap.Ply)

	srv.do(http.MethodPost, base+"/moves", `{"move":"Nf3"}`, nil)

	var view study.View
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, base+"/restore", "", &view))
	assert.Equal(t, "1. e4 e5", view.Tree.MoveText)
	assert.Equal(t, 1, view.Ply)

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodPost, "/studies/nope/restore", "", nil))
}
