package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/openshift-eng/iib-setup/internal/pkg/cluster"
	"github.com/openshift-eng/iib-setup/internal/pkg/clusterresources"
	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
	"github.com/openshift-eng/iib-setup/internal/pkg/errcode"
	"github.com/openshift-eng/iib-setup/internal/pkg/iib"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
	"github.com/openshift-eng/iib-setup/internal/pkg/podman"
	"github.com/openshift-eng/iib-setup/internal/pkg/registry"
	"github.com/openshift-eng/iib-setup/internal/pkg/spinners"
	"github.com/openshift-eng/iib-setup/internal/pkg/version"
)

var (
	setupLongDesc = templates.LongDesc(
		`
		Prepare a cluster to install an operator from a brew built index image.

		The command resolves the most recent IIB index image built for the target
		operator bundle and OCP version, logs the cluster and the local container
		engine in to the brew registry, and applies the ImageContentSourcePolicy
		and CatalogSource needed for the operator to show up in OperatorHub.

		The target OCP version defaults to the OCP_VERSION environment variable.
		Cluster access follows the usual KUBECONFIG loading rules.

		Generated manifests are kept under <workspace>/cluster-resources for
		later inspection, and a detailed run log under <workspace>/logs.
		`,
	)
	setupExamples = templates.Examples(
		`
# Prepare the cluster for the default bundle and OCP version
iib-setup

# Target another OCP version
OCP_VERSION=v4.14 iib-setup

# Resolve and render the manifests without touching the cluster
iib-setup --dry-run
		`,
	)

	ocpVersionRegexp = regexp.MustCompile(`^v[0-9]+\.[0-9]+$`)
)

type GlobalOptions struct {
	OCPVersion      string
	Bundle          string
	WorkingDir      string
	LogLevel        string
	IsDryRun        bool
	SkipEngineCheck bool
	IsTerminal      bool
}

type ExecutorSchema struct {
	Log              clog.PluggableLoggerInterface
	LogsDir          string
	logFile          *os.File
	audit            *logrus.Logger
	Opts             *GlobalOptions
	Podman           podman.ValidatorInterface
	Resolver         iib.ResolverInterface
	Broker           registry.BrokerInterface
	ClusterResources clusterresources.GeneratorInterface
	Applier          clusterresources.ApplierInterface
	Clients          *cluster.Clients
	MakeDir          MakeDirInterface
}

type MakeDirInterface interface {
	makeDirAll(string, os.FileMode) error
}

type MakeDir struct {
}

func (o MakeDir) makeDirAll(dir string, mode os.FileMode) error {
	return os.MkdirAll(dir, mode)
}

// NewSetupCmd - cobra entry point
func NewSetupCmd(log clog.PluggableLoggerInterface) *cobra.Command {

	opts := &GlobalOptions{}

	ex := &ExecutorSchema{
		Log:     log,
		Opts:    opts,
		MakeDir: MakeDir{},
	}

	cmd := &cobra.Command{
		Use:           filepath.Base(os.Args[0]),
		Short:         "Install a brew built operator catalog on the current cluster.",
		Long:          setupLongDesc,
		Example:       setupExamples,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Info(emoji.WavingHandSign + " Hello, welcome to iib-setup")
			log.Info(emoji.Gear + "  setting up the environment for you...")

			if !slices.Contains([]string{"info", "debug", "trace", "error"}, opts.LogLevel) {
				log.Error("log-level has an invalid value %s , it should be one of (info,debug,trace,error)", opts.LogLevel)
				os.Exit(1)
			}
			log.Level(opts.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ex.Validate(); err != nil {
				return err
			}
			if err := ex.Complete(); err != nil {
				return err
			}
			defer ex.Close()
			return ex.Run(cmd, args)
		},
	}
	cmd.AddCommand(version.NewVersionCommand(log))

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level one of (info, debug, trace, error)")
	cmd.Flags().StringVar(&opts.OCPVersion, "ocp-version", "", "Target OCP version of the index image (default "+ocpVersionEnvVar+" env var, then "+defaultOCPVersion+")")
	cmd.Flags().StringVar(&opts.Bundle, "bundle", defaultBundle, "Operator bundle name the index image must contain")
	cmd.Flags().StringVar(&opts.WorkingDir, "workspace", "", "Workspace where manifests and logs are generated (default ./"+workingDir+")")
	cmd.Flags().BoolVar(&opts.IsDryRun, "dry-run", false, "Resolve the index image and render manifests without mutating anything")
	cmd.Flags().BoolVar(&opts.SkipEngineCheck, "skip-engine-check", false, "Skip the podman client check")

	return cmd
}

// Validate - cobra validation
func (o ExecutorSchema) Validate() error {
	if o.Opts.Bundle == "" {
		return fmt.Errorf("--bundle cannot be empty")
	}
	ocpVersion := o.Opts.OCPVersion
	if ocpVersion == "" {
		ocpVersion = os.Getenv(ocpVersionEnvVar)
	}
	if ocpVersion != "" && !ocpVersionRegexp.MatchString(ocpVersion) {
		return fmt.Errorf("ocp version %q is invalid, expected the form v4.13", ocpVersion)
	}
	return nil
}

// Complete - do the final setup of modules
func (o *ExecutorSchema) Complete() error {

	// flag wins over env var, env var wins over the default
	if o.Opts.OCPVersion == "" {
		if envOverride, ok := os.LookupEnv(ocpVersionEnvVar); ok && envOverride != "" {
			o.Opts.OCPVersion = envOverride
		} else {
			o.Opts.OCPVersion = defaultOCPVersion
		}
	}
	if o.Opts.WorkingDir == "" {
		o.Opts.WorkingDir = workingDir
	}
	o.Opts.IsTerminal = term.IsTerminal(int(os.Stdout.Fd()))

	if err := o.setupWorkingDir(); err != nil {
		return err
	}
	if err := o.setupLogsLevelAndDir(); err != nil {
		return err
	}

	o.Log.Info(emoji.TwistedRighwardsArrows+" target ocp version: %s bundle: %s", o.Opts.OCPVersion, o.Opts.Bundle)

	o.Podman = podman.New(o.Log)
	o.Resolver = iib.New(o.Log, o.Opts.Bundle, o.Opts.OCPVersion)
	o.ClusterResources = clusterresources.New(o.Log, o.Opts.WorkingDir)

	if o.Opts.IsDryRun {
		return nil
	}

	clients, err := cluster.NewClients()
	if err != nil {
		return err
	}
	o.Clients = clients
	o.Broker = registry.NewBroker(o.Log, clients.Kube, registry.NewTokenClient(o.Log), registry.NewAuthenticator(o.Log))
	o.Applier = clusterresources.NewApplier(o.Log, clients.Dynamic)
	return nil
}

// Run - walk the stage pipeline, aborting on the first failure
func (o *ExecutorSchema) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if o.Opts.SkipEngineCheck {
		o.Log.Warn(emoji.Warning + " skipping the container engine check on request")
	} else {
		o.auditStage("engine-check")
		if err := o.Podman.Validate(ctx); err != nil {
			return stageErrorf("engine check", errcode.EngineErr, err)
		}
		o.Log.Info(emoji.CheckMarkButton + " container engine client is ready")
	}

	if o.Clients != nil {
		o.auditStage("cluster-check")
		serverVersion, err := o.Clients.Ping()
		if err != nil {
			return stageErrorf("cluster check", errcode.EngineErr, err)
		}
		o.Log.Info(emoji.CheckMarkButton+" cluster API is reachable (server version %s)", serverVersion)
	}

	o.auditStage("resolve-index")
	var indexImage string
	err := spinners.Run("Resolving index image", o.Opts.IsTerminal, func() error {
		var resolveErr error
		indexImage, resolveErr = o.Resolver.Resolve(ctx)
		return resolveErr
	})
	if err != nil {
		return stageErrorf("index image resolution", errcode.ResolverErr, err)
	}

	if !o.Opts.IsDryRun {
		o.auditStage("registry-auth")
		err := spinners.Run("Logging in to the brew registry", o.Opts.IsTerminal, func() error {
			return o.Broker.Authenticate(ctx)
		})
		if err != nil {
			return stageErrorf("registry authentication", errcode.RegistryErr, err)
		}
	}

	o.auditStage("icsp")
	icsp, err := o.ClusterResources.ICSPGenerator()
	if err != nil {
		return stageErrorf("ImageContentSourcePolicy generation", errcode.ClusterResourcesErr, err)
	}
	if !o.Opts.IsDryRun {
		if err := o.Applier.ApplyICSP(ctx, icsp); err != nil {
			return stageErrorf("ImageContentSourcePolicy apply", errcode.ClusterResourcesErr, err)
		}
	}

	o.auditStage("catalogsource")
	catalogSource, err := o.ClusterResources.CatalogSourceGenerator(indexImage)
	if err != nil {
		return stageErrorf("CatalogSource generation", errcode.ClusterResourcesErr, err)
	}
	if !o.Opts.IsDryRun {
		if err := o.Applier.ApplyCatalogSource(ctx, catalogSource); err != nil {
			return stageErrorf("CatalogSource apply", errcode.ClusterResourcesErr, err)
		}
	}

	if o.Opts.IsDryRun {
		o.Log.Info(emoji.Eyes+" dry-run: manifests rendered under %s, nothing was applied", filepath.Join(o.Opts.WorkingDir, "cluster-resources"))
	} else {
		o.Log.Info(emoji.Rocket+" catalog %s is ready, the operator can now be installed from OperatorHub", indexImage)
	}
	o.Log.Info(emoji.WavingHandSign + " Goodbye, thank you for using iib-setup")
	return nil
}

func (o *ExecutorSchema) setupWorkingDir() error {
	if err := o.MakeDir.makeDirAll(o.Opts.WorkingDir, 0755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", o.Opts.WorkingDir, err)
	}
	return nil
}

// setupLogsLevelAndDir prepares the logs directory and the per run audit
// log file written by logrus.
func (o *ExecutorSchema) setupLogsLevelAndDir() error {
	o.LogsDir = filepath.Join(o.Opts.WorkingDir, logsDir)
	if err := o.MakeDir.makeDirAll(o.LogsDir, 0755); err != nil {
		return fmt.Errorf("creating logs directory %s: %w", o.LogsDir, err)
	}

	auditLogger := logrus.New()
	auditLogger.SetLevel(logrus.DebugLevel)
	logPath := filepath.Join(o.LogsDir, logFilename)
	logFile, err := os.Create(logPath)
	if err != nil {
		auditLogger.Warn("Failed to create the run log file, using default stderr")
	} else {
		o.logFile = logFile
		auditLogger.SetOutput(logFile)
	}
	o.audit = auditLogger
	return nil
}

func (o *ExecutorSchema) auditStage(stage string) {
	if o.audit != nil {
		o.audit.WithField("stage", stage).Info("stage started")
	}
}

func (o *ExecutorSchema) Close() {
	if o.logFile != nil {
		o.logFile.Close()
	}
}
