package appctx

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("db", "", "")
	return cmd
}

func TestBootstrapOpensAndMigrates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shelfq.db")
	t.Setenv("SHELFQ_DB_PATH", dbPath)

	app, err := Bootstrap(testCmd(), DefaultOptions())
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}
	defer app.Close()

	if app.DB == nil || app.Store == nil {
		t.Fatal("DB not opened")
	}
	// Migrations must have run
	cat := app.Store.LoadCatalog()
	if cat.Len() != 0 {
		t.Errorf("fresh catalog has %d books", cat.Len())
	}
}

func TestBootstrapDBFlagOverride(t *testing.T) {
	t.Setenv("SHELFQ_DB_PATH", filepath.Join(t.TempDir(), "env.db"))
	flagPath := filepath.Join(t.TempDir(), "flag.db")

	cmd := testCmd()
	if err := cmd.Flags().Set("db", flagPath); err != nil {
		t.Fatal(err)
	}

	app, err := Bootstrap(cmd, DefaultOptions())
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}
	defer app.Close()

	if app.Config.DBPath != flagPath {
		t.Errorf("DBPath = %q, want flag value", app.Config.DBPath)
	}
}

func TestBootstrapNoDB(t *testing.T) {
	t.Setenv("SHELFQ_DB_PATH", filepath.Join(t.TempDir(), "unused.db"))

	app, err := Bootstrap(testCmd(), NoDB())
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Error("DB opened when not requested")
	}
	if app.Config == nil {
		t.Error("Config not loaded")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Setenv("SHELFQ_DB_PATH", filepath.Join(t.TempDir(), "shelfq.db"))

	app, err := Bootstrap(testCmd(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	app.Close()
	app.Close()
}
