package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkey/portal/internal/client/models"
)

func credentials(email, password string) models.Credentials {
	return models.Credentials{Email: email, Password: password}
}

func studentReg() models.StudentRegistration {
	return models.StudentRegistration{
		Name:           "Ayesha Khan",
		Email:          "ayesha@students.pk",
		Password:       "s3cret-pass",
		CNIC:           "35201-1234567-1",
		UniversityName: "Punjab University",
	}
}

func TestClient_LoginNestedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accessToken":"tok-1","user":{"email":"a@b.pk","role":[{"authority":"ROLE_hec"}]}}`))
	})

	c, _ := newTestClient(t, mux, "")

	token, user, err := c.Login(context.Background(), credentials("a@b.pk", "password123"))
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, []string{"ROLE_HEC"}, user.Roles)
}

func TestClient_LoginTopLevelUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accessToken":"tok-2","email":"a@b.pk","role":["student"]}`))
	})

	c, _ := newTestClient(t, mux, "")

	token, user, err := c.Login(context.Background(), credentials("a@b.pk", "password123"))
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, "a@b.pk", user.Email)
	assert.Equal(t, []string{"ROLE_STUDENT"}, user.Roles)
}

func TestClient_BackendMessagePassthrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register-student", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"email exists"}`))
	})

	c, _ := newTestClient(t, mux, "")

	_, err := c.RegisterStudent(context.Background(), studentReg())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email exists", apiErr.Error())
}

func TestClient_BackendFailureWithoutMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register-student", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c, _ := newTestClient(t, mux, "")

	_, err := c.RegisterStudent(context.Background(), studentReg())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "request failed with status 500", apiErr.Error())
}

func TestClient_VerifyDegreeRequest(t *testing.T) {
	var path string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /verifier/degree-requests/{id}/verify", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": {
				"studentName": "Ayesha Khan",
				"program": "BS Computer Science",
				"cgpa": 3.71,
				"transactionHash": "0xabc",
				"blockNumber": 120034,
				"ipfsHash": "QmTestHash"
			}
		}`))
	})

	c, _ := newTestClient(t, mux, "")

	resp, err := c.VerifyDegreeRequest(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "/verifier/degree-requests/ABC123/verify", path)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "Ayesha Khan", resp.Record.StudentName)
	assert.Equal(t, "3.71", resp.Record.CGPA.String())
	assert.Equal(t, "https://ipfs.io/ipfs/QmTestHash", resp.Record.AssetURL())
}

func TestClient_VerifyDegreeRequestNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /verifier/degree-requests/{id}/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"not found"}`))
	})

	c, _ := newTestClient(t, mux, "")

	resp, err := c.VerifyDegreeRequest(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "not found", resp.Message)
	assert.Nil(t, resp.Record)
}

func TestClient_VerifyDegreeRequestEmptyID(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux(), "")

	_, err := c.VerifyDegreeRequest(context.Background(), "")
	require.Error(t, err)
}
