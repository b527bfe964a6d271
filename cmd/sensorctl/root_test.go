package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersCommandGroups(t *testing.T) {
	root := newRootCmd()

	want := []string{"verify", "agent", "session", "policy", "object", "metadata", "gateway", "version"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}

	for _, name := range want {
		require.Contains(t, got, name)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"profiles", "specs", "json", "verbose", "insecure", "yes", "workers"} {
		require.NotNil(t, root.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}
}

func TestVerifyListShowsBuiltinSpecs(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"verify", "--list"})

	require.NoError(t, root.Execute())

	output := buf.String()
	require.Contains(t, output, "metadata-categories")
	require.Contains(t, output, "twamp-sf-metrics")
}

func TestConfirmDeletionAnswers(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{name: "yes", answer: "yes\n", want: true},
		{name: "short yes", answer: "y\n", want: true},
		{name: "uppercase yes", answer: "YES\n", want: true},
		{name: "no", answer: "no\n", want: false},
		{name: "empty line", answer: "\n", want: false},
		{name: "closed input", answer: "", want: false},
		{name: "anything else", answer: "sure\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			got := confirmDeletion(strings.NewReader(tt.answer), out)
			require.Equal(t, tt.want, got)
			require.Contains(t, out.String(), "Proceed with deletion?")
		})
	}
}
