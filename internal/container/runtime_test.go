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

// fakeExecutor answers LookPath/RunSilent from tables and delegates piped
// runs to a function.
type fakeExecutor struct {
	onPath   map[string]bool
	succeeds map[string]bool // "bin arg1 arg2" -> RunSilent succeeds
	piped    func(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if f.succeeds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	if f.piped != nil {
		return f.piped(name, args, stdin, stdout)
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
				onPath:   map[string]bool{"docker": true},
				succeeds: map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"podman": true},
				succeeds: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &fakeExecutor{},
			wantErr: true,
		},
		{
			name: "docker info fails, podman works",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"docker": true, "podman": true},
				succeeds: map[string]bool{"podman info": true},
			},
			wantName: "podman",
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
	docker := newDocker(&fakeExecutor{succeeds: map[string]bool{"docker image inspect markitdown:latest": true}})
	assert.NoError(t, docker.ImageExists("markitdown:latest"))

	podman := newPodman(&fakeExecutor{})
	err := podman.ImageExists("markitdown:latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markitdown:latest")
}

func TestRun(t *testing.T) {
	var gotArgs []string
	rt := newDocker(&fakeExecutor{
		piped: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			gotArgs = args
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text: " + string(data)))
			return nil
		},
	})

	var out bytes.Buffer
	require.NoError(t, rt.Run(context.Background(), "markitdown:latest", strings.NewReader("doc"), &out))
	assert.Equal(t, "text: doc", out.String())
	assert.Equal(t, []string{"run", "--rm", "-i", "--network", "none", "markitdown:latest"}, gotArgs)
}

func TestRunFailureIsWrapped(t *testing.T) {
	rt := newPodman(&fakeExecutor{
		piped: func(string, []string, io.Reader, io.Writer) error {
			return errors.New("exit status 1")
		},
	})

	err := rt.Run(context.Background(), "markitdown:latest", strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running podman container markitdown:latest")
}
