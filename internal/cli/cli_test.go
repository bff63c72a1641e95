package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamestore/internal/api"
	"github.com/mcoot/gamestore/internal/factory"
	"github.com/mcoot/gamestore/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app       *factory.TestApp
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Storefront:  s.app.Storefront,
		AuthService: s.app.AuthService,
	}))
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
	s.T().Setenv("STOREFRONT_TOKEN", "")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI with stdin and returns stdout
func (s *CLISuite) run(stdin string, args ...string) (string, error) {
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", s.server.URL, "--token-file", s.tokenFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) registerAndLogin() {
	_, err := s.run("", "account", "register", "--username", "alice", "--email", "a@x.io", "--password", "pw1")
	s.Require().NoError(err)
	_, err = s.run("", "account", "login", "--email", "a@x.io", "--password", "pw1")
	s.Require().NoError(err)
}

func (s *CLISuite) TestHealth() {
	s.app.AddGame("Portal", 9.99, "", "")

	out, err := s.run("", "-o", "json", "health")
	s.Require().NoError(err)

	var result HealthResult
	s.Require().NoError(json.Unmarshal([]byte(out), &result))
	s.Equal("ok", result.Status)
	s.Equal(1, result.Games)
}

func (s *CLISuite) TestRegisterLoginMeLogout() {
	out, err := s.run("", "account", "register", "--username", "alice", "--email", "a@x.io", "--password", "pw1")
	s.Require().NoError(err)
	s.Contains(out, "User created successfully! Please log in.")

	out, err = s.run("", "account", "login", "--email", "a@x.io", "--password", "pw1")
	s.Require().NoError(err)
	s.Contains(out, "User: alice")

	saved, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.NotEmpty(saved)

	out, err = s.run("", "account", "me")
	s.Require().NoError(err)
	s.Contains(out, "alice")

	_, err = s.run("", "account", "logout")
	s.Require().NoError(err)
	s.NoFileExists(s.tokenFile)

	_, err = s.run("", "account", "me")
	s.Error(err)
}

func (s *CLISuite) TestLoginFailureIsReported() {
	_, err := s.run("", "account", "login", "--email", "ghost@x.io", "--password", "nope")
	s.Require().Error(err)

	var reqErr *RequestError
	s.Require().ErrorAs(err, &reqErr)
	s.Equal(401, reqErr.Status)
	s.Equal("INVALID_CREDENTIALS", reqErr.Code)
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestGamesListShowSearch() {
	zelda := s.app.AddGame("Zelda", 59.99, "Nintendo", "")
	s.app.AddGame("Celeste", 19.99, "", "")

	out, err := s.run("", "games", "list")
	s.Require().NoError(err)
	s.Less(strings.Index(out, "Celeste"), strings.Index(out, "Zelda"))
	s.Contains(out, "$59.99")

	out, err = s.run("", "games", "show", strconvID(int64(zelda)))
	s.Require().NoError(err)
	s.Contains(out, "Publisher: Nintendo")
	s.Contains(out, "Developer: N/A")
	s.Contains(out, "Release date: N/A")

	out, err = s.run("", "-o", "json", "games", "search", "cel")
	s.Require().NoError(err)
	var list GameList
	s.Require().NoError(json.Unmarshal([]byte(out), &list))
	s.Require().Len(list.Games, 1)
	s.Equal("Celeste", list.Games[0].Name)

	_, err = s.run("", "games", "show", "nope")
	s.Error(err)
}

func (s *CLISuite) TestBuyAsksForConfirmation() {
	portal := s.app.AddGame("Portal", 9.99, "", "")
	s.registerAndLogin()
	id := strconvID(int64(portal))

	out, err := s.run("n\n", "games", "buy", id)
	s.Require().NoError(err)
	s.Contains(out, "Purchase cancelled.")

	out, err = s.run("", "library")
	s.Require().NoError(err)
	s.Contains(out, "You do not own any games yet.")

	out, err = s.run("y\n", "games", "buy", id)
	s.Require().NoError(err)
	s.Contains(out, "Game purchased successfully!")

	_, err = s.run("", "games", "buy", "--yes", id)
	s.Require().Error(err)
	s.Contains(err.Error(), "ALREADY_OWNED")

	out, err = s.run("", "library")
	s.Require().NoError(err)
	s.Contains(out, "Portal")
}

func (s *CLISuite) TestInvalidOutputFormat() {
	_, err := s.run("", "-o", "yaml", "health")
	s.Error(err)
}

func TestShellAndSeedAgainstSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	t.Setenv("GAMESTORE_STORE_DRIVER", "sqlite")
	t.Setenv("GAMESTORE_SQLITE_PATH", dbPath)
	t.Setenv("GAMESTORE_BCRYPT_COST", "4")

	run := func(stdin string, args ...string) string {
		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	out := run("", "seed")
	assert.Contains(t, out, "Loaded 8 games")

	out = run("", "seed")
	assert.Contains(t, out, "nothing loaded")

	out = run("q\n", "shell")
	assert.Contains(t, out, "Welcome to the Game Store.")
	assert.Contains(t, out, "Goodbye.")
}

func strconvID(id int64) string {
	return strconv.FormatInt(id, 10)
}
