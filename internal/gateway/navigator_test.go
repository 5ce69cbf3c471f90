package gateway

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterNavigator(t *testing.T) {
	var buf bytes.Buffer
	err := WriterNavigator{W: &buf}.Navigate(context.Background(), "http://localhost:5000/auth/google")
	require.NoError(t, err)
	assert.Equal(t, "Open this URL to continue: http://localhost:5000/auth/google\n", buf.String())
}

func TestRecordingNavigator(t *testing.T) {
	rec := &RecordingNavigator{}
	require.NoError(t, rec.Navigate(context.Background(), "a"))
	require.NoError(t, rec.Navigate(context.Background(), "b"))
	assert.Equal(t, []string{"a", "b"}, rec.Targets())
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	nav := NavigatorFunc(func(_ context.Context, target string) error {
		got = target
		return nil
	})
	require.NoError(t, nav.Navigate(context.Background(), "x"))
	assert.Equal(t, "x", got)
}

func TestBrowserNavigator(t *testing.T) {
	t.Run("no opener", func(t *testing.T) {
		nav := BrowserNavigator{Command: func(string) *exec.Cmd { return nil }}
		assert.Error(t, nav.Navigate(context.Background(), "http://x"))
	})

	t.Run("opener receives target", func(t *testing.T) {
		path, err := exec.LookPath("true")
		if err != nil {
			t.Skip("true binary not available")
		}
		var got string
		nav := BrowserNavigator{Command: func(target string) *exec.Cmd {
			got = target
			return exec.Command(path)
		}}
		require.NoError(t, nav.Navigate(context.Background(), "http://clinic.test/auth/google"))
		assert.Equal(t, "http://clinic.test/auth/google", got)
	})
}
