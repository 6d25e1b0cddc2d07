// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/keymaster-github/internal/github"
	"github.com/toeirei/keymaster-github/internal/logging"
	"github.com/toeirei/keymaster-github/internal/security"
)

type fakeAPI struct {
	calls []string
	// creds holds "user:password" as seen during the call.
	creds []string
	title string
	key   string
	resp  []byte
	err   error
}

func (f *fakeAPI) CreateKey(_ context.Context, c github.Credentials, title, key string) ([]byte, error) {
	f.calls = append(f.calls, "create")
	f.creds = append(f.creds, c.User+":"+c.Password.Reveal())
	f.title, f.key = title, key
	return f.resp, f.err
}

func (f *fakeAPI) DeleteKey(_ context.Context, c github.Credentials, keyID string) ([]byte, error) {
	f.calls = append(f.calls, "delete:"+keyID)
	f.creds = append(f.creds, c.User+":"+c.Password.Reveal())
	return f.resp, f.err
}

func (f *fakeAPI) ListPublicKeys(_ context.Context, user string) ([]byte, error) {
	f.calls = append(f.calls, "public:"+user)
	return f.resp, f.err
}

func (f *fakeAPI) ListKeys(_ context.Context, c github.Credentials) ([]byte, error) {
	f.calls = append(f.calls, "list")
	f.creds = append(f.creds, c.User+":"+c.Password.Reveal())
	return f.resp, f.err
}

func (f *fakeAPI) GetKey(_ context.Context, c github.Credentials, keyID string) ([]byte, error) {
	f.calls = append(f.calls, "get:"+keyID)
	f.creds = append(f.creds, c.User+":"+c.Password.Reveal())
	return f.resp, f.err
}

const pubLine = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIHJtVJ9Rj0Wm0Wq5l0tnGg5nq3r2t3m8yY0n6KZ7yq1C leo@laptop extra comment"

func writeKey(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "id_ed25519.pub")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return p
}

func TestMutator_PresentSendsFirstLine(t *testing.T) {
	api := &fakeAPI{resp: []byte(`{"id":12345678}`)}
	path := writeKey(t, pubLine+"\nssh-rsa AAAA second\n")

	out, err := NewMutator(api).Execute(context.Background(), Present{
		User: "leocomelli", Password: security.FromString("secret"), Title: "my_new_key", KeyPath: path,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(out) != `{"id":12345678}` {
		t.Fatalf("body altered: %s", out)
	}
	if api.key != pubLine {
		t.Fatalf("key = %q, want %q", api.key, pubLine)
	}
	if api.title != "my_new_key" {
		t.Fatalf("title = %q", api.title)
	}
	if api.creds[0] != "leocomelli:secret" {
		t.Fatalf("credentials not forwarded: %q", api.creds[0])
	}
}

func TestMutator_ForgetsPassword(t *testing.T) {
	api := &fakeAPI{}
	pw := security.FromString("pw")
	if _, err := NewMutator(api).Execute(context.Background(), Absent{User: "u", Password: pw, KeyID: "1"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if api.creds[0] != "u:pw" {
		t.Fatalf("password not visible during the call: %q", api.creds[0])
	}
	for _, b := range pw {
		if b != 0 {
			t.Fatalf("password not zeroed after the call")
		}
	}
}

func TestMutator_PresentMissingFileNoRequest(t *testing.T) {
	api := &fakeAPI{}
	_, err := NewMutator(api).Execute(context.Background(), Present{
		User: "u", Password: security.FromString("pw"), Title: "t", KeyPath: filepath.Join(t.TempDir(), "nope.pub"),
	})
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("no request expected, got %v", api.calls)
	}
}

func TestMutator_Absent(t *testing.T) {
	api := &fakeAPI{resp: []byte{}}
	_, err := NewMutator(api).Execute(context.Background(), Absent{User: "u", Password: security.FromString("pw"), KeyID: "8767854"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(api.calls) != 1 || api.calls[0] != "delete:8767854" {
		t.Fatalf("calls = %v", api.calls)
	}
}

func TestMutator_DuplicateKeyHint(t *testing.T) {
	api := &fakeAPI{err: &github.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "HTTP Error 422: Unprocessable Entity"}}
	_, err := NewMutator(api).Execute(context.Background(), Present{
		User: "u", Password: security.FromString("pw"), Title: "t", KeyPath: writeKey(t, pubLine),
	})
	if err == nil || !strings.HasSuffix(err.Error(), "- key is already in use") {
		t.Fatalf("expected duplicate hint, got %v", err)
	}
}

func TestMutator_OtherErrorsVerbatim(t *testing.T) {
	api := &fakeAPI{err: &github.APIError{StatusCode: http.StatusNotFound, Message: "HTTP Error 404: Not Found"}}
	_, err := NewMutator(api).Execute(context.Background(), Absent{User: "u", Password: security.FromString("pw"), KeyID: "1"})
	if err == nil || err.Error() != "HTTP Error 404: Not Found" {
		t.Fatalf("expected verbatim message, got %v", err)
	}

	// 422 on delete is not a duplicate key.
	api = &fakeAPI{err: &github.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "HTTP Error 422: Unprocessable Entity"}}
	_, err = NewMutator(api).Execute(context.Background(), Absent{User: "u", Password: security.FromString("pw"), KeyID: "1"})
	if err == nil || strings.Contains(err.Error(), DuplicateKeyHint) {
		t.Fatalf("delete must not carry the duplicate hint, got %v", err)
	}
}

// TestMutator_AgainstHTTP drives the real client through a fake GitHub to
// check the body that actually goes over the wire.
func TestMutator_AgainstHTTP(t *testing.T) {
	var gotBody map[string]string
	var gotPath, gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod, gotAuth = r.URL.Path, r.Method, r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"Validation Failed"}`)
	}))
	defer srv.Close()

	client, err := github.NewClient(github.Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = NewMutator(client).Execute(context.Background(), Present{
		User: "u", Password: security.FromString("pw"), Title: "dup", KeyPath: writeKey(t, pubLine+"\n"),
	})
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Error() != "HTTP Error 422: Unprocessable Entity - key is already in use" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if gotMethod != http.MethodPost || gotPath != "/user/keys" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["key"] != pubLine || gotBody["title"] != "dup" {
		t.Fatalf("body = %v", gotBody)
	}
	if want := "Basic " + base64.StdEncoding.EncodeToString([]byte("u:pw")); gotAuth != want {
		t.Fatalf("Authorization = %q, want %q", gotAuth, want)
	}
}

func TestMutator_UndecodableKeyUploadedAsIs(t *testing.T) {
	var logs bytes.Buffer
	logging.SetOutput(&logs)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	const line = "ssh-ed25519 !!!notbase64 leo@laptop"
	api := &fakeAPI{resp: []byte(`{}`)}
	_, err := NewMutator(api).Execute(context.Background(), Present{
		User: "u", Password: security.FromString("pw"), Title: "t", KeyPath: writeKey(t, line+"\n"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if api.key != line {
		t.Fatalf("key = %q, want %q", api.key, line)
	}
	if !strings.Contains(logs.String(), "ssh-ed25519 key in") {
		t.Fatalf("warning does not name the algorithm:\n%s", logs.String())
	}
}
