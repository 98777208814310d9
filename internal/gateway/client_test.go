package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/escolactl/internal/logging"
	"github.com/mbarros/escolactl/internal/models"
	"github.com/mbarros/escolactl/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewStore(filepath.Join(t.TempDir(), "token.json"))
	log := logging.NewDefault(io.Discard)
	c := New(srv.URL, 5*time.Second, sess, log)
	c.newRequestID = func() string { return "test-req" }
	return c, sess
}

func authedSession(t *testing.T, sess *session.Store) {
	t.Helper()
	require.NoError(t, sess.Save(session.Credential{
		Token: "abc", TokenType: "Bearer", Persistence: session.ScopeSession,
	}))
}

func TestLoginPostsFormAndReturnsToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "admin@escola.com", r.PostForm.Get("username"))
		assert.Equal(t, "123456", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"Bearer"}`))
	}))

	tok, err := c.Login(context.Background(), "admin@escola.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}

func TestLoginInvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Credenciais inválidas"}`))
	}))

	_, err := c.Login(context.Background(), "admin@escola.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthenticated)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Credenciais inválidas", gerr.Detail)
}

func TestAuthorizedCallCarriesHeaders(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "test-req", r.Header.Get("X-Request-Id"))
		_, _ = w.Write([]byte(`[]`))
	}))
	authedSession(t, sess)

	_, err := c.ListStudents(context.Background())
	require.NoError(t, err)
}

func TestCallWithoutCredentialFailsLocally(t *testing.T) {
	reached := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	_, err := c.ListClasses(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, reached, "request must not reach the network")
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	kinds := []func(c *Client) error{
		func(c *Client) error { _, err := c.ListClasses(context.Background()); return err },
		func(c *Client) error { _, err := c.ListStudents(context.Background()); return err },
		func(c *Client) error { _, err := c.ListAccounts(context.Background()); return err },
		func(c *Client) error { _, err := c.Statistics(context.Background()); return err },
	}

	for _, call := range kinds {
		c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token expirado"}`))
		}))
		authedSession(t, sess)

		err := call(c)
		require.ErrorIs(t, err, ErrUnauthenticated)
		assert.False(t, sess.Authenticated(), "401 must clear the credential")
	}
}

func TestFailedLoginKeepsStoredCredential(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Credenciais inválidas"}`))
	}))
	authedSession(t, sess)

	_, err := c.Login(context.Background(), "admin@escola.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.True(t, sess.Authenticated(), "failed login must not clear the stored credential")
}

func TestHealth401KeepsStoredCredential(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	authedSession(t, sess)

	err := c.Health(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.True(t, sess.Authenticated(), "unauthed probe must not clear the stored credential")
}

func TestRemoteRejectedCarriesDetail(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Não é possível excluir turma com 3 aluno(s) ativo(s)"}`))
	}))
	authedSession(t, sess)

	_, err := c.DeleteClass(context.Background(), 9)
	require.ErrorIs(t, err, ErrRemoteRejected)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusBadRequest, gerr.Status)
	assert.Contains(t, gerr.Detail, "aluno(s) ativo(s)")
}

func TestUnreachableServer(t *testing.T) {
	sess := session.NewStore(filepath.Join(t.TempDir(), "token.json"))
	authedSession(t, sess)
	c := New("http://127.0.0.1:1", time.Second, sess, logging.NewDefault(io.Discard))

	_, err := c.ListStudents(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
	// no retry and no session side effect
	assert.True(t, sess.Authenticated())
}

func TestCreateStudentSendsWirePayload(t *testing.T) {
	classID := 2
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/alunos", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"nome": "Ana Souza",
			"data_nascimento": "2010-03-14",
			"status": "ativo",
			"turma_id": 2
		}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"nome":"Ana Souza","data_nascimento":"2010-03-14","status":"ativo","turma_id":2}`))
	}))
	authedSession(t, sess)

	created, err := c.CreateStudent(context.Background(), models.StudentInput{
		Name:      "Ana Souza",
		BirthDate: models.NewDate(2010, time.March, 14),
		Status:    models.StatusActive,
		ClassID:   &classID,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
}

func TestDeleteStudentReturnsActionMessage(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/alunos/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Aluno marcado como inativo","success":true}`))
	}))
	authedSession(t, sess)

	msg, err := c.DeleteStudent(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, msg.Success)
	assert.Contains(t, msg.Message, "inativo")
}

func TestMalformedResponse(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nope`))
	}))
	authedSession(t, sess)

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrRemoteRejected)
}
