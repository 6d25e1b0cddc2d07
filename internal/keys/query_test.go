// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/toeirei/keymaster-github/internal/github"
)

func TestQuery_Dispatch(t *testing.T) {
	cases := []struct {
		name     string
		password *string
		keyID    *string
		want     string
	}{
		{"public", nil, nil, "public:leocomelli"},
		{"authenticated", strp("pw"), nil, "list"},
		{"single", strp("pw"), strp("8767854"), "get:8767854"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{resp: []byte(`[{"id":1}]`)}
			req, err := NewFactsRequest("leocomelli", tc.password, tc.keyID)
			if err != nil {
				t.Fatalf("NewFactsRequest: %v", err)
			}
			out, err := NewQuery(api).Execute(context.Background(), req)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if string(out) != `[{"id":1}]` {
				t.Fatalf("body altered: %s", out)
			}
			if len(api.calls) != 1 || api.calls[0] != tc.want {
				t.Fatalf("calls = %v, want [%s]", api.calls, tc.want)
			}
		})
	}
}

func TestQuery_PathsOverHTTP(t *testing.T) {
	type hit struct{ path, auth string }
	var hits []hit
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, hit{r.URL.Path, r.Header.Get("Authorization")})
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client, err := github.NewClient(github.Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	q := NewQuery(client)
	for _, args := range []struct{ password, keyID *string }{
		{nil, nil}, {strp("pw"), nil}, {strp("pw"), strp("7")},
	} {
		req, _ := NewFactsRequest("octo", args.password, args.keyID)
		if _, err := q.Execute(context.Background(), req); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	want := []string{"/users/octo/keys", "/user/keys", "/user/keys/7"}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v", hits)
	}
	for i, w := range want {
		if hits[i].path != w {
			t.Errorf("request %d path = %s, want %s", i, hits[i].path, w)
		}
	}
	if hits[0].auth != "" {
		t.Errorf("public listing sent credentials")
	}
	if hits[1].auth == "" || hits[2].auth == "" {
		t.Errorf("authenticated requests missing credentials")
	}
}

func TestQuery_FailureMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client, _ := github.NewClient(github.Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	req, _ := NewFactsRequest("ghost", nil, nil)
	_, err := NewQuery(client).Execute(context.Background(), req)
	if err == nil || err.Error() != "HTTP Error 404: Not Found" {
		t.Fatalf("unexpected error %v", err)
	}
}
