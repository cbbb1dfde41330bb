package remote

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
)

// ServiceRef points at the backend Service inside a cluster.
type ServiceRef struct {
	Namespace string
	Name      string
	Port      string // number or port name; empty uses the service default
}

// ParseServiceRef parses "<namespace>/<service>[:<port>]".
func ParseServiceRef(s string) (ServiceRef, error) {
	s = strings.TrimSpace(s)
	ns, rest, ok := strings.Cut(s, "/")
	if !ok || ns == "" || rest == "" {
		return ServiceRef{}, fmt.Errorf("invalid service %q: want <namespace>/<service>[:<port>]", s)
	}
	name, port, _ := strings.Cut(rest, ":")
	if name == "" || strings.Contains(name, "/") {
		return ServiceRef{}, fmt.Errorf("invalid service %q: want <namespace>/<service>[:<port>]", s)
	}
	return ServiceRef{Namespace: ns, Name: name, Port: port}, nil
}

// ProxyPath is the API server path that proxies to the service.
func (r ServiceRef) ProxyPath() string {
	svc := url.PathEscape(r.Name)
	if r.Port != "" {
		svc += ":" + url.PathEscape(r.Port)
	}
	return fmt.Sprintf("/api/v1/namespaces/%s/services/%s/proxy", url.PathEscape(r.Namespace), svc)
}

func (r ServiceRef) String() string {
	if r.Port == "" {
		return r.Namespace + "/" + r.Name
	}
	return r.Namespace + "/" + r.Name + ":" + r.Port
}

// kubeconfigPath resolves the explicit path, then $KUBECONFIG, then ~/.kube/config.
func kubeconfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("KUBECONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kube", "config")
}

func newKubeProxyTransport(cfg config.ServerConfig) (*http.Client, string, error) {
	ref, err := ParseServiceRef(cfg.KubeService)
	if err != nil {
		return nil, "", &domain.APIError{Type: domain.ErrConfig, Message: err.Error(), Err: err}
	}

	path := kubeconfigPath(cfg.Kubeconfig)
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if !strings.Contains(path, string(os.PathListSeparator)) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, "", &domain.APIError{
				Type:    domain.ErrConfig,
				Message: fmt.Sprintf("no kubeconfig found at %s", path),
				Err:     err,
			}
		}
		loadingRules.ExplicitPath = path
	}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, "", &domain.APIError{
			Type:    domain.ErrConfig,
			Message: fmt.Sprintf("invalid kubeconfig: %v", err),
			Err:     err,
		}
	}

	httpClient, err := rest.HTTPClientFor(restConfig)
	if err != nil {
		return nil, "", &domain.APIError{
			Type:    domain.ErrConfig,
			Message: fmt.Sprintf("cannot build cluster transport: %v", err),
			Err:     err,
		}
	}

	host := strings.TrimRight(restConfig.Host, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return httpClient, host + ref.ProxyPath(), nil
}
