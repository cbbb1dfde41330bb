// Package cli wires the krb-tui command tree: the interactive TUI as the
// default command plus non-interactive get, view, restore, create and delete.
package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/logging"
	"github.com/wcrum/krb-tui/internal/remote"
	"github.com/wcrum/krb-tui/internal/tui"
)

const (
	FlagConfig      = "config"
	FlagServer      = "server"
	FlagKubeService = "kube-service"
	FlagKubeconfig  = "kubeconfig"
	FlagTimeout     = "timeout"
	FlagLogFile     = "log-file"
	FlagLogLevel    = "log-level"
	FlagOutput      = "output"
)

// GatewayFactory builds the gateway for a resolved server config.
type GatewayFactory func(cfg config.ServerConfig, log logrus.FieldLogger) (domain.RecycleGateway, error)

// RemoteGateway is the production GatewayFactory.
func RemoteGateway(cfg config.ServerConfig, log logrus.FieldLogger) (domain.RecycleGateway, error) {
	c, err := remote.NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// errFailed is returned after per-name failures were already printed.
var errFailed = errors.New("one or more operations failed")

// IsReported reports whether err was already printed as a ✗ line.
func IsReported(err error) bool {
	return errors.Is(err, errFailed)
}

// app is the state shared by every command of one invocation.
type app struct {
	newGateway GatewayFactory
	version    string

	cfg      *config.AppConfig
	log      *logrus.Logger
	closeLog func() error
}

// New returns the root command. The default action starts the TUI.
func New(newGateway GatewayFactory, version string) *cobra.Command {
	a := &app{newGateway: newGateway, version: version}

	cmd := &cobra.Command{
		Use:   "krb-tui",
		Short: "Browse and restore deleted Kubernetes resources held by the recycle bin",
		Long: `krb-tui talks to a kube-recycle-bin server. Without a subcommand it opens
an interactive terminal UI with two pages: recycle items and recycle policies.`,
		Example: `  # Open the TUI against a local server
  krb-tui --server http://localhost:8080

  # Reach the server through the API server service proxy
  krb-tui --kube-service krb-system/krb-server:8080

  # List recycle items as YAML
  krb-tui get items -o yaml`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: a.runTUI,
	}

	f := cmd.PersistentFlags()
	f.String(FlagConfig, "", "config file (default ~/.config/krb-tui/config.yaml)")
	f.String(FlagServer, "", "recycle bin server URL")
	f.String(FlagKubeService, "", "reach the server as <namespace>/<service>[:port] through the API server proxy")
	f.String(FlagKubeconfig, "", "kubeconfig used with --kube-service")
	f.Duration(FlagTimeout, 0, "per-request timeout, 0 waits forever")
	f.String(FlagLogFile, "", "append logs to this file")
	f.String(FlagLogLevel, "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newGetCommand(a),
		newViewCommand(a),
		newRestoreCommand(a),
		newCreateCommand(a),
		newDeleteCommand(a),
		newVersionCommand(a),
	)
	return cmd
}

// setup loads the config file, then environment, then flags, each layer
// overriding the previous one.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()

	path, _ := f.GetString(FlagConfig)
	var (
		cfg *config.AppConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadConfigFrom(path)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)

	if f.Changed(FlagServer) {
		cfg.Server.URL, _ = f.GetString(FlagServer)
		cfg.Server.KubeService = ""
	}
	if f.Changed(FlagKubeService) {
		cfg.Server.KubeService, _ = f.GetString(FlagKubeService)
	}
	if f.Changed(FlagKubeconfig) {
		cfg.Server.Kubeconfig, _ = f.GetString(FlagKubeconfig)
	}
	if f.Changed(FlagTimeout) {
		cfg.Server.RequestTimeout, _ = f.GetDuration(FlagTimeout)
	}
	if f.Changed(FlagLogFile) {
		cfg.Log.File, _ = f.GetString(FlagLogFile)
	}
	if f.Changed(FlagLogLevel) {
		cfg.Log.Level, _ = f.GetString(FlagLogLevel)
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.closeLog = closeLog
	a.log.WithField("command", cmd.CommandPath()).Debug("starting")
	return nil
}

func (a *app) gateway() (domain.RecycleGateway, error) {
	return a.newGateway(a.cfg.Server, a.log)
}

func (a *app) endpoint() string {
	if a.cfg.Server.KubeService != "" {
		return "svc/" + a.cfg.Server.KubeService
	}
	return a.cfg.Server.URL
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	statePath, err := config.StatePath()
	if err != nil {
		a.log.WithError(err).Warn("theme will not be persisted")
		statePath = ""
	}
	settings := tui.Settings{
		Config:    a.cfg,
		Logger:    a.log,
		StatePath: statePath,
		Endpoint:  a.endpoint(),
	}
	factory := func() (domain.RecycleGateway, error) {
		return a.gateway()
	}

	var m tui.Model
	if gw, err := a.gateway(); err != nil {
		a.log.WithError(err).Error("creating client failed")
		m = tui.NewModelWithError(err, factory, settings)
	} else {
		m = tui.NewModel(gw, factory, settings)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
