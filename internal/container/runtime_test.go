// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records piped invocations and answers lookups from maps.
type fakeExecutor struct {
	bins     map[string]bool // binary -> LookPath succeeds
	commands map[string]bool // "bin arg1 arg2" -> RunSilent succeeds
	piped    func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error

	lastName string
	lastArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.bins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if f.commands[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f.lastName = name
	f.lastArgs = args
	if f.piped != nil {
		return f.piped(name, args, stdin, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *fakeExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &fakeExecutor{
				bins:     map[string]bool{"docker": true},
				commands: map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback",
			exec: &fakeExecutor{
				bins:     map[string]bool{"podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker daemon down, podman works",
			exec: &fakeExecutor{
				bins:     map[string]bool{"docker": true, "podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &fakeExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	exec := &fakeExecutor{commands: map[string]bool{
		"docker image inspect pdftotext:latest": true,
		"podman image exists pdftotext:latest":  true,
	}}

	assert.NoError(t, newDockerRuntime(exec).ImageExists("pdftotext:latest"))
	assert.NoError(t, newPodmanRuntime(exec).ImageExists("pdftotext:latest"))

	err := newDockerRuntime(exec).ImageExists("missing:latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing:latest")
}

func TestRun_PipesAndBuildsArgs(t *testing.T) {
	exec := &fakeExecutor{
		piped: func(_ string, _ []string, stdin io.Reader, stdout, _ io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text of " + string(data)))
			return nil
		},
	}
	rt := newPodmanRuntime(exec)

	var out bytes.Buffer
	err := rt.Run(context.Background(), "pdftotext:latest", []string{"pdftotext", "-", "-"}, strings.NewReader("pdf bytes"), &out)
	require.NoError(t, err)

	assert.Equal(t, "text of pdf bytes", out.String())
	assert.Equal(t, "podman", exec.lastName)
	assert.Equal(t, []string{"run", "--rm", "-i", "--network", "none", "pdftotext:latest", "pdftotext", "-", "-"}, exec.lastArgs)
}

func TestRun_FailureIncludesStderr(t *testing.T) {
	exec := &fakeExecutor{
		piped: func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
			_, _ = stderr.Write([]byte("Syntax Error: Couldn't find trailer dictionary\n"))
			return errors.New("exit status 1")
		},
	}

	err := newDockerRuntime(exec).Run(context.Background(), "pdftotext:latest", nil, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "Couldn't find trailer dictionary")
}
