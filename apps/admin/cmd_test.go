package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

func testToken(t *testing.T) string {
	t.Helper()
	claims := jwt.StandardClaims{Subject: "1", ExpiresAt: time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("signing token failed, %v", err)
	}
	return token
}

func setup(t *testing.T) (*commandLine, *[]string) {
	t.Helper()
	logger = log.New(ioutil.Discard, "", 0)

	var requests []string
	token := testToken(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/users/login":
			var body struct{ Email, Password string }
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password == "wrong" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"token": token, "role": "admin", "userId": "1",
			})
		case "/users/create-field-agent", "/users/reset-password":
			if got := r.Header.Get("Authorization"); got != "Bearer "+token {
				t.Errorf("Authorization = %q, want bearer token", got)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	conf := &core.Config{}
	conf.Backend.BaseURL = srv.URL
	conf.Backend.Timeout = 5 * time.Second

	client, err := backend.NewClient(conf)
	if err != nil {
		t.Fatalf("NewClient() failed, %v", err)
	}
	return &commandLine{client: client}, &requests
}

func mockPasswords(t *testing.T, pwds []string) {
	t.Helper()
	orig := readPasswordFunc
	i := 0
	readPasswordFunc = func(fd int) ([]byte, error) {
		if i >= len(pwds) {
			t.Fatal("password prompted more times than expected")
		}
		pwd := pwds[i]
		i++
		return []byte(pwd), nil
	}
	t.Cleanup(func() { readPasswordFunc = orig })
}

type cliTest struct {
	name      string
	args      []string // without program name
	passwords []string
	wantErr   error
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "addagent: missing flags", args: []string{"addagent", "-username", "aline"}, wantErr: errHelp},
		{name: "resetpassword: no email", args: []string{"resetpassword"}, wantErr: errHelp},
		{
			name:      "addagent",
			args:      []string{"addagent", "-admin", "admin@hub.org", "-username", "aline", "-email", "aline@hub.org"},
			passwords: []string{"admin-pass", "agent-pass"},
		},
		{
			name:      "resetpassword",
			args:      []string{"resetpassword", "-email", "aline@hub.org"},
			passwords: []string{"old-pass", "new-pass"},
		},
		{
			name:      "addagent: bad admin password",
			args:      []string{"addagent", "-admin", "admin@hub.org", "-username", "aline", "-email", "aline@hub.org"},
			passwords: []string{"wrong", "agent-pass"},
			wantErr:   backend.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _ := setup(t)
			if tt.passwords != nil {
				mockPasswords(t, tt.passwords)
			}

			err := cli.run(append([]string{"admin"}, tt.args...))
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addAgent(t *testing.T) {
	cli, requests := setup(t)

	if err := cli.addAgent("Admin@Hub.org", "admin-pass", "Aline ", "Aline@Hub.org", "agent-pass"); err != nil {
		t.Fatalf("addAgent() failed, %v", err)
	}
	want := []string{"POST /users/login", "POST /users/create-field-agent"}
	if !reflect.DeepEqual(*requests, want) {
		t.Errorf("backend calls = %v, want %v", *requests, want)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, requests := setup(t)

	if err := cli.resetPassword("aline@hub.org", "old-pass", "new-pass"); err != nil {
		t.Fatalf("resetPassword() failed, %v", err)
	}
	want := []string{"POST /users/login", "POST /users/reset-password"}
	if !reflect.DeepEqual(*requests, want) {
		t.Errorf("backend calls = %v, want %v", *requests, want)
	}
}
