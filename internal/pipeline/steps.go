package pipeline

const (
	StepValidateInput     = "validate-input"
	StepCopyClusterXML    = "copy-cluster-xml"
	StepUpdateZclJSON     = "update-zcl-json"
	StepGenerateAppCommon = "generate-app-common"
	StepUpdateClusterList = "update-cluster-list"
	StepCopyImplementation = "copy-implementation"
	StepPatchZapFile      = "patch-zap-file"
	StepGenerateZapFile   = "generate-zap-file"
)

// serverDirectoriesField is the zap_cluster_list.json map of cluster define to server implementation dirs.
const serverDirectoriesField = "ServerDirectories"

type step struct {
	name string
	skip bool
	run  func() error
}
