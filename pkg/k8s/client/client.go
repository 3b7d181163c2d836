// Package client builds the Kubernetes clientset used for ConfigMap input and
// output.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig names the kubeconfig file to use.
const EnvKubeconfig = "KUBECONFIG"

var (
	mu           sync.Mutex
	cachedClient kubernetes.Interface
	clientErr    error
	built        bool
)

// Get returns the process-wide client, building it on first use. A failed
// build is cached too, so a missing cluster is reported once per process.
func Get() (kubernetes.Interface, error) {
	mu.Lock()
	defer mu.Unlock()

	if !built {
		cachedClient, _, clientErr = Build("")
		built = true
	}
	return cachedClient, clientErr
}

// Override installs c as the process-wide client and returns a function
// restoring the previous state. It exists for tests and for callers that
// build their own client.
func Override(c kubernetes.Interface) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	prevClient, prevErr, prevBuilt := cachedClient, clientErr, built
	cachedClient, clientErr, built = c, nil, true

	return func() {
		mu.Lock()
		defer mu.Unlock()
		cachedClient, clientErr, built = prevClient, prevErr, prevBuilt
	}
}

// Build creates a client from kubeconfig, bypassing the cache. An empty
// path tries $KUBECONFIG, then ~/.kube/config, then in-cluster configuration.
func Build(kubeconfig string) (kubernetes.Interface, *rest.Config, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv(EnvKubeconfig)
	}
	if kubeconfig == "" {
		candidate := filepath.Join(homedir.HomeDir(), ".kube", "config")
		if _, err := os.Stat(candidate); err == nil {
			kubeconfig = candidate
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}
