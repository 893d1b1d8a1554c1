package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(db)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClientAndPhoneCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bilemo.db")

	out, err := run(t, db, "client", "create", "--name", "Shop", "--email", "shop@example.com", "--password", "password123")
	require.NoError(t, err)
	require.Contains(t, out, `"email": "shop@example.com"`)

	_, err = run(t, db, "client", "create", "--name", "Shop", "--email", "shop@example.com", "--password", "password123")
	require.Error(t, err)

	out, err = run(t, db, "phone", "add", "--brand", "Apple", "--model", "iPhone 13", "--reference", "IPH13", "--price-cents", "90900")
	require.NoError(t, err)
	require.Contains(t, out, `"Reference": "IPH13"`)

	out, err = run(t, db, "phone", "list")
	require.NoError(t, err)
	require.Contains(t, out, "IPH13\tApple\tiPhone 13")
	require.Contains(t, out, "1 of 1")
}

func TestPhoneAddRequiresFields(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bilemo.db")
	_, err := run(t, db, "phone", "add", "--brand", "Apple")
	require.Error(t, err)
}
