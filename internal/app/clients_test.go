package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"super_sheets/internal/oauth"
	"super_sheets/internal/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

const clientSecretJSON = `{"installed":{"client_id":"id.apps.googleusercontent.com","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","client_secret":"shh","redirect_uris":["urn:ietf:wg:oauth:2.0:oob"]}}`

func testTokenDir(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client-secret.json"), []byte(clientSecretJSON), 0600))

	token, err := json.Marshal(&oauth2.Token{AccessToken: "cached", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sheets.json"), token, 0600))

	return Config{
		TokenDir:              dir,
		ClientSecretPath:      filepath.Join(dir, "client-secret.json"),
		TokenPath:             filepath.Join(dir, "sheets.json"),
		SpreadsheetID:         "append-id",
		ReadbackSpreadsheetID: "readback-id",
		SheetName:             "Sheet1",
	}
}

func TestOpenRecorderAppendsAndReadsBack(t *testing.T) {
	cfg := testTokenDir(t)

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer cached", r.Header.Get("Authorization"))
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, ":append") {
			w.Write([]byte(`{"updates":{"updatedRange":"Sheet1!A3:F3","updatedRows":1}}`))
			return
		}
		w.Write([]byte(`{"range":"Sheet1!A3:F3","values":[["2017-9-8","$1,100","$600","100","200","300"]]}`))
	}))
	defer srv.Close()

	prompted := false
	codes := oauth.CodeProviderFunc(func(ctx context.Context, authURL string) (string, error) {
		prompted = true
		return "", nil
	})

	rec, err := OpenRecorder(context.Background(), cfg, codes, option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	rec.Now = func() time.Time { return time.Date(2017, 9, 8, 0, 0, 0, 0, time.UTC) }

	result, err := rec.Record(context.Background(), "100", "200", "300")
	require.NoError(t, err)

	assert.False(t, prompted)
	assert.Equal(t, []string{
		"POST /v4/spreadsheets/append-id/values/Sheet1:append",
		"GET /v4/spreadsheets/readback-id/values/Sheet1!A3:F3",
	}, paths)
	assert.Equal(t, &recorder.Result{
		Date:            "2017-9-8",
		Total:           "$1,100",
		AustralianSuper: "$600",
		Transaction:     "100",
		Shares:          "200",
		HighGrowth:      "300",
	}, result)
}

func TestOpenRecorderMissingClientSecret(t *testing.T) {
	cfg := testTokenDir(t)
	cfg.ClientSecretPath = filepath.Join(cfg.TokenDir, "nope.json")

	_, err := OpenRecorder(context.Background(), cfg, oauth.NewConsolePrompt())
	assert.ErrorIs(t, err, oauth.ErrClientSecret)
}
