package cli

const (
	workingDir string = "working-dir"
	logsDir    string = "logs"

	logFilename string = "iib-setup.log"

	ocpVersionEnvVar  string = "OCP_VERSION"
	defaultOCPVersion string = "v4.13"

	defaultBundle string = "openshift-gitops-operator-bundle"
)
