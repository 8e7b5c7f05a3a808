//go:build integration

// Package tests contains helpers to run integration tests against real infrastructure in docker.
package tests

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

var ErrDockerFailure = errors.New("docker failure")

// RetryFunc is the function you use to connect to the docker container.
// Return a func that will be used by the dockertest.Pool for the actual connection,
// it will be called multiple times in attempts to connect to the container, while that's still starting up.
type RetryFunc func(resource *dockertest.Resource) func() error

//nolint:gochecknoglobals // running containers are shared, so the last user can purge them.
var (
	containers   = map[string]int{}
	containersMu = sync.Mutex{}
)

const dockerTimeout = 120 * time.Second

// StartDockerContainer connects to the local docker service and starts a container for integration testing.
// Configure the container by setting the dockertest.RunOptions, the most important ones:
// - Repository:	is the dockerhub repo to pull, e.g. "postgres"
// - Tag:			is the tag to pull, e.g. 16
// - Env:			are the env variables to set for the container
//
// The returned func stops and removes the container.
func StartDockerContainer(runOptions *dockertest.RunOptions, retryFunc RetryFunc) (func() error, error) {
	if runOptions == nil {
		return nil, fmt.Errorf("%w: invalid run options", ErrDockerFailure)
	}

	if retryFunc == nil {
		return nil, fmt.Errorf("%w: invalid retry func", ErrDockerFailure)
	}

	pool, err := dockertest.NewPool("") // uses a sensible default on windows (tcp/http) and linux/osx (socket)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create new pool: %v", ErrDockerFailure, err)
	}

	err = pool.Client.Ping()
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect to docker: %v", ErrDockerFailure, err)
	}

	resource, err := pool.RunWithOptions(
		runOptions,
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no", MaximumRetryCount: 0}
		})
	if err != nil {
		return nil, fmt.Errorf("%w: could not start resource: %v", ErrDockerFailure, err)
	}

	_ = resource.Expire(uint(dockerTimeout.Seconds())) // hard kill, if a test never cleans up

	// the application in the container might not be ready to accept connections yet
	pool.MaxWait = dockerTimeout
	if err := pool.Retry(retryFunc(resource)); err != nil {
		_ = pool.Purge(resource)

		return nil, fmt.Errorf("%w: could not connect to docker: %v", ErrDockerFailure, err)
	}

	name := resource.Container.Name

	containersMu.Lock()
	containers[name]++
	containersMu.Unlock()

	return func() error {
		containersMu.Lock()
		defer containersMu.Unlock()

		containers[name]--
		if containers[name] > 0 {
			return nil // other tests still use the container
		}

		delete(containers, name)

		if err := pool.Purge(resource); err != nil {
			return fmt.Errorf("%w: could not purge resource: %v", ErrDockerFailure, err)
		}

		return nil
	}, nil
}
