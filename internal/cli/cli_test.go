package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
)

type result struct {
	stdout string
	stderr string
	err    error
	server config.ServerConfig
}

func fixture() *domain.MockGateway {
	return &domain.MockGateway{
		Items: []domain.RecycleItem{
			{Name: "deploy-a", ObjectKey: "apps/v1/Deployment/default/a", ObjectAPIVersion: "apps/v1", ObjectKind: "Deployment", ObjectNamespace: "default", Age: "1h5m"},
			{Name: "ns-c", ObjectKey: "v1/Namespace/c", ObjectAPIVersion: "v1", ObjectKind: "Namespace", Age: "30s"},
		},
		Policies: []domain.RecyclePolicy{
			{Name: "deployments", Group: "apps", Resource: "deployments", Namespaces: []string{"dev", "staging"}, Age: "2h"},
			{Name: "configmaps", Resource: "configmaps", Age: "5m"},
		},
		Document:       "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: a\n",
		RestoreMessage: "Successfully restored apps/v1/Deployment/default/a",
		CreateMessage:  "Successfully created RecyclePolicy p1",
		DeleteMessage:  "Successfully deleted RecyclePolicy deployments",
	}
}

func execute(t *testing.T, gw domain.RecycleGateway, args ...string) result {
	t.Helper()
	var r result
	factory := func(cfg config.ServerConfig, _ logrus.FieldLogger) (domain.RecycleGateway, error) {
		r.server = cfg
		return gw, nil
	}
	r.stdout, r.stderr, r.err = run(t, factory, args...)
	return r
}

func run(t *testing.T, factory GatewayFactory, args ...string) (string, string, error) {
	t.Helper()
	cmd := New(factory, "1.2.3")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if !containsFlag(args, "--"+FlagConfig) {
		args = append(args, "--"+FlagConfig, filepath.Join(t.TempDir(), "missing.yaml"))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func TestGetItems_Table(t *testing.T) {
	r := execute(t, fixture(), "get", "items")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "deploy-a")
	assert.Contains(t, r.stdout, "apps/v1/Deployment/default/a")
	assert.Contains(t, r.stdout, "1h 5m")
	assert.Contains(t, r.stdout, "(cluster)")
}

func TestGetItems_JSON(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "get", "ri", "-o", "json")
	require.NoError(t, r.err)

	var got []domain.RecycleItem
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, gw.Items, got)
}

func TestGetItems_YAML(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "get", "items", "-o", "yaml")
	require.NoError(t, r.err)

	var got []domain.RecycleItem
	require.NoError(t, yaml.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, gw.Items, got)
}

func TestGetItems_Empty(t *testing.T) {
	r := execute(t, &domain.MockGateway{}, "get", "items")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No recycle items found.")
}

func TestGetItems_InvalidOutput(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "get", "items", "-o", "xml")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), `invalid output format "xml"`)
	assert.Zero(t, gw.ListItemsCalls)
}

func TestGetItems_Failure(t *testing.T) {
	gw := fixture()
	gw.ListItemsErr = &domain.APIError{Type: domain.ErrTransport, Message: "connection refused"}
	r := execute(t, gw, "get", "items")
	require.Error(t, r.err)
	assert.Equal(t, "failed to list recycle items: connection refused", r.err.Error())
	assert.False(t, IsReported(r.err))
}

func TestGetPolicies_Table(t *testing.T) {
	r := execute(t, fixture(), "get", "policies")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "deployments.apps")
	assert.Contains(t, r.stdout, "dev,staging")
	assert.Contains(t, r.stdout, "(all namespaces)")
	assert.Contains(t, r.stdout, "5m")
}

func TestGetPolicies_JSONKeepsEmptyNamespaces(t *testing.T) {
	gw := &domain.MockGateway{Policies: []domain.RecyclePolicy{{Name: "p", Resource: "secrets", Namespaces: []string{}}}}
	r := execute(t, gw, "get", "policies", "-o", "json")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `"namespaces": []`)
}

func TestView_YAML(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "view", "deploy-a", "ns-c")
	require.NoError(t, r.err)
	assert.Equal(t, gw.Document+"---\n"+gw.Document, r.stdout)
	assert.Equal(t, 2, gw.DocumentCalls)
}

func TestView_JSON(t *testing.T) {
	r := execute(t, fixture(), "view", "deploy-a", "-o", "json")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "» [deploy-a]")
	assert.Contains(t, r.stdout, `"kind": "Deployment"`)
}

func TestView_HTML(t *testing.T) {
	r := execute(t, fixture(), "view", "deploy-a", "-o", "html")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `<pre class="hl" title="deploy-a">`)
	assert.Contains(t, r.stdout, `kind<span class="hl-key">: </span>Deployment`)
}

func TestView_Failure(t *testing.T) {
	gw := fixture()
	gw.GetDocumentErr = &domain.APIError{Type: domain.ErrServer, Status: 404, Message: "not found"}
	r := execute(t, gw, "view", "gone")
	require.Error(t, r.err)
	assert.True(t, IsReported(r.err))
	assert.Contains(t, r.stderr, "✗ failed to get RecycleItem [gone]: not found (HTTP 404)")
}

func TestView_RequiresName(t *testing.T) {
	r := execute(t, fixture(), "view")
	require.Error(t, r.err)
}

func TestRestore(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "restore", "deploy-a")
	require.NoError(t, r.err)
	assert.Equal(t, "deploy-a", gw.RestoredItem)
	assert.Equal(t, "✓ Successfully restored apps/v1/Deployment/default/a\n", r.stdout)
}

func TestRestore_Failure(t *testing.T) {
	gw := fixture()
	gw.RestoreErr = &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "object already exists"}
	r := execute(t, gw, "restore", "a", "b")
	require.Error(t, r.err)
	assert.True(t, IsReported(r.err))
	assert.Equal(t, 2, gw.RestoreCalls, "every name is attempted")
	assert.Contains(t, r.stderr, "✗ failed to restore RecycleItem [a]: object already exists (HTTP 409)")
	assert.Contains(t, r.stderr, "✗ failed to restore RecycleItem [b]")
}

func TestRestore_EmptyServerMessage(t *testing.T) {
	gw := fixture()
	gw.RestoreMessage = ""
	r := execute(t, gw, "restore", "deploy-a")
	require.NoError(t, r.err)
	assert.Equal(t, "✓ restored RecycleItem [deploy-a]\n", r.stdout)
}

func TestCreatePolicy(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "create", "policy", " p1 ",
		"--resource", "deployments", "--group", "apps", "--namespaces", "default,,prod,default")
	require.NoError(t, r.err)
	require.NotNil(t, gw.CreatedSpec)
	assert.Equal(t, domain.PolicySpec{
		Name:       "p1",
		Group:      "apps",
		Resource:   "deployments",
		Namespaces: []string{"default", "prod"},
	}, *gw.CreatedSpec)
	assert.Contains(t, r.stdout, "✓ Successfully created RecyclePolicy p1")
}

func TestCreatePolicy_AllNamespaces(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "create", "policy", "p1", "--resource", "secrets")
	require.NoError(t, r.err)
	require.NotNil(t, gw.CreatedSpec)
	assert.NotNil(t, gw.CreatedSpec.Namespaces)
	assert.Empty(t, gw.CreatedSpec.Namespaces)
}

func TestCreatePolicy_MissingResource(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "create", "policy", "p1", "--resource", "  ")
	require.Error(t, r.err)
	assert.Zero(t, gw.CreateCalls)
	assert.Contains(t, r.stderr, "✗ name and --resource are required")
}

func TestCreatePolicy_Conflict(t *testing.T) {
	gw := fixture()
	gw.CreateErr = &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "already exists"}
	r := execute(t, gw, "create", "policy", "p1", "--resource", "secrets")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "✗ failed to create RecyclePolicy [p1]: already exists (HTTP 409)")
}

func TestDeletePolicy(t *testing.T) {
	gw := fixture()
	r := execute(t, gw, "delete", "policy", "deployments")
	require.NoError(t, r.err)
	assert.Equal(t, "deployments", gw.DeletedPolicy)
	assert.Contains(t, r.stdout, "✓ Successfully deleted RecyclePolicy deployments")
}

func TestDeletePolicy_InUse(t *testing.T) {
	gw := fixture()
	gw.DeleteErr = &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "in use"}
	r := execute(t, gw, "delete", "policy", "deployments")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "✗ failed to delete RecyclePolicy [deployments]: in use (HTTP 409)")
}

func TestVersion(t *testing.T) {
	r := execute(t, fixture(), "version")
	require.NoError(t, r.err)
	assert.Equal(t, "krb-tui 1.2.3\n", r.stdout)
}

func TestGatewayError(t *testing.T) {
	factory := func(config.ServerConfig, logrus.FieldLogger) (domain.RecycleGateway, error) {
		return nil, &domain.APIError{Type: domain.ErrConfig, Message: "no kubeconfig found at /nope"}
	}
	_, _, err := run(t, factory, "get", "items")
	require.Error(t, err)
	assert.False(t, IsReported(err))
	assert.True(t, domain.IsType(err, domain.ErrConfig))
}

func TestServerFlags(t *testing.T) {
	r := execute(t, fixture(), "get", "items",
		"--server", "http://krb.example:9090", "--timeout", "5s")
	require.NoError(t, r.err)
	assert.Equal(t, "http://krb.example:9090", r.server.URL)
	assert.Equal(t, 5*time.Second, r.server.RequestTimeout)
	assert.Empty(t, r.server.KubeService)
}

func TestKubeServiceFlags(t *testing.T) {
	r := execute(t, fixture(), "get", "items",
		"--kube-service", "krb-system/krb-server:8080", "--kubeconfig", "/tmp/kc")
	require.NoError(t, r.err)
	assert.Equal(t, "krb-system/krb-server:8080", r.server.KubeService)
	assert.Equal(t, "/tmp/kc", r.server.Kubeconfig)
}

func TestConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: http://file:1\n  request_timeout: 2s\n"), 0o600))

	r := execute(t, fixture(), "get", "items", "--config", path)
	require.NoError(t, r.err)
	assert.Equal(t, "http://file:1", r.server.URL)
	assert.Equal(t, 2*time.Second, r.server.RequestTimeout)

	t.Setenv(config.EnvServerURL, "http://env:2")
	r = execute(t, fixture(), "get", "items", "--config", path)
	require.NoError(t, r.err)
	assert.Equal(t, "http://env:2", r.server.URL)

	r = execute(t, fixture(), "get", "items", "--config", path, "--server", "http://flag:3")
	require.NoError(t, r.err)
	assert.Equal(t, "http://flag:3", r.server.URL)
}

func TestMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	gw := fixture()
	r := execute(t, gw, "get", "items", "--config", path)
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "loading config")
	assert.Zero(t, gw.ListItemsCalls)
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "krb.log")
	r := execute(t, fixture(), "get", "items", "--log-file", logPath, "--log-level", "debug")
	require.NoError(t, r.err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting")
	assert.NotContains(t, r.stdout, "starting")
}

func TestBadLogLevel(t *testing.T) {
	r := execute(t, fixture(), "get", "items", "--log-level", "loud")
	require.Error(t, r.err)
	assert.False(t, errors.Is(r.err, errFailed))
}
