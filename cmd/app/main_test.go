package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-board/internal/model"
	"github.com/BuzzLyutic/task-board/internal/repo"
)

func TestExportTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "Buy milk", Priority: model.PriorityLow, Status: model.StatusToDo},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exportTasks(&buf, "json", tasks))

		got, err := repo.Decode(buf.String())
		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("pdf", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exportTasks(&buf, "pdf", tasks))
		assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, exportTasks(&bytes.Buffer{}, "csv", tasks))
	})
}

func TestImportThenExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	in := filepath.Join(dir, "dump.json")
	dump := `[{"id":5,"title":"Imported","description":"","dueDate":"","priority":"High","status":"In Progress"}]`
	require.NoError(t, os.WriteFile(in, []byte(dump), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"import", "--file", in})
	require.NoError(t, root.Execute())

	out := filepath.Join(dir, "export.json")
	root = newRootCmd()
	root.SetArgs([]string{"export", "--format", "json", "--out", out})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, dump, string(raw))
}

func TestImportRequiresFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"import"})
	assert.Error(t, root.Execute())
}
