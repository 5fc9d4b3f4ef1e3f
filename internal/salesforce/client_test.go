package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// startOrg runs an httptest server whose token endpoint reports the server
// itself as the instance URL, and returns a logged-in client against it.
func startOrg(t *testing.T, api http.HandlerFunc) *Client {
	t.Helper()
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/services/oauth2/token" {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"access_token": "token-123",
				"instance_url": srvURL,
				"token_type":   "Bearer",
			})
			return
		}
		api(w, r)
	}))
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	c := NewClient(srv.URL, "59.0", Credentials{
		Username: "admin@example.com", Password: "pw", SecurityToken: "tok",
		ClientID: "id", ClientSecret: "secret",
	})
	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	return c
}

func TestLoginSendsPasswordGrant(t *testing.T) {
	var gotForm map[string]string
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/oauth2/token" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = r.ParseForm()
		gotForm = map[string]string{
			"grant_type": r.PostFormValue("grant_type"),
			"password":   r.PostFormValue("password"),
			"username":   r.PostFormValue("username"),
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "token-123", "instance_url": srvURL,
		})
	}))
	defer srv.Close()
	srvURL = srv.URL

	c := NewClient(srv.URL, "59.0", Credentials{
		Username: "admin@example.com", Password: "pw", SecurityToken: "tok",
		ClientID: "id", ClientSecret: "secret",
	})
	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotForm["grant_type"] != "password" {
		t.Fatalf("grant_type = %q", gotForm["grant_type"])
	}
	if gotForm["password"] != "pwtok" {
		t.Fatalf("password must append the security token, got %q", gotForm["password"])
	}
	if gotForm["username"] != "admin@example.com" {
		t.Fatalf("username = %q", gotForm["username"])
	}
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"authentication failure"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "59.0", Credentials{Username: "u", Password: "p", ClientID: "i", ClientSecret: "s"})
	err := c.Login(context.Background())
	if err == nil || !strings.Contains(err.Error(), "authentication failure") {
		t.Fatalf("want login failure with body, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	c := startOrg(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/data/v59.0/query" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("auth header = %q", got)
		}
		if q := r.URL.Query().Get("q"); !strings.Contains(q, "FROM Profile") {
			t.Errorf("soql = %q", q)
		}
		_ = json.NewEncoder(w).Encode(QueryResult{
			TotalSize: 1, Done: true,
			Records: []map[string]any{{"Id": "00e000000000000AAA", "Name": "Standard User"}},
		})
	})

	res, err := c.Query(context.Background(), "SELECT Id, Name FROM Profile LIMIT 1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if res.TotalSize != 1 || StringField(res.Records[0], "Name") != "Standard User" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCreateSObject(t *testing.T) {
	var gotBody map[string]any
	c := startOrg(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/data/v59.0/sobjects/User" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(SaveResult{ID: "005000000000001AAA", Success: true})
	})

	res, err := c.CreateSObject(context.Background(), "User", map[string]any{"Username": "a@b.com", "IsActive": true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !res.Success || res.ID != "005000000000001AAA" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotBody["Username"] != "a@b.com" || gotBody["IsActive"] != true {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
}

func TestCreateSObjectErrorKeepsErrorCode(t *testing.T) {
	c := startOrg(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"errorCode":"DUPLICATE_USERNAME","message":"Duplicate Username.","fields":["Username"]}]`))
	})

	_, err := c.CreateSObject(context.Background(), "User", map[string]any{"Username": "a@b.com"})
	if err == nil {
		t.Fatal("want error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %T", err)
	}
	if !strings.Contains(err.Error(), "DUPLICATE_USERNAME") {
		t.Fatalf("error must keep the code: %q", err.Error())
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
}

func TestCreateSObjectErrorNonStandardBody(t *testing.T) {
	c := startOrg(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := c.CreateSObject(context.Background(), "User", map[string]any{})
	if err == nil || !strings.Contains(err.Error(), "upstream unavailable") {
		t.Fatalf("want raw body passthrough, got %v", err)
	}
}

func TestEscapeSOQL(t *testing.T) {
	if got := EscapeSOQL(`O'Neil\`); got != `O\'Neil\\` {
		t.Fatalf("escaped = %q", got)
	}
}
