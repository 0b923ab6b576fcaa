// Package layout holds the paths zclext reads and writes inside a Matter source tree.
// They are a compatibility surface with the tree's own layout, so they are not configurable.
package layout

import "path/filepath"

const (
	ZclJSON             = "src/app/zap-templates/zcl/zcl.json"
	ZclDataModelDir     = "src/app/zap-templates/zcl/data-model"
	GlobalAttributesXML = "src/app/zap-templates/zcl/data-model/chip/global-attributes.xml"
	ClusterListJSON     = "src/app/zap_cluster_list.json"
	ClustersDir         = "src/app/clusters"
	GeneratorScript     = "scripts/tools/zap/generate.py"
	ControllerZap       = "src/controller/data_model/controller-clusters.zap"
	AppCommonTemplates  = "src/app/common/templates/templates.json"
	AppCommonOutput     = "zzz_generated/app-common/app-common/zap-generated"

	// ZclXMLRootPrefix is how zcl.json refers to data-model subdirectories.
	ZclXMLRootPrefix = "./data-model/"
)

// Repo resolves layout paths against a tree root.
type Repo struct {
	Root string
}

func (r Repo) path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

func (r Repo) ZclJSON() string {
	return r.path(ZclJSON)
}

func (r Repo) ClusterListJSON() string {
	return r.path(ClusterListJSON)
}

func (r Repo) GlobalAttributesXML() string {
	return r.path(GlobalAttributesXML)
}

// DataModelDir is the directory a vendor's cluster XML files are staged into.
func (r Repo) DataModelDir(name string) string {
	return filepath.Join(r.path(ZclDataModelDir), name)
}

// ClusterImplementationDir is the directory a cluster server implementation is staged into.
func (r Repo) ClusterImplementationDir(name string) string {
	return filepath.Join(r.path(ClustersDir), name)
}

func (r Repo) Generator(script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	return r.path(script)
}

// XMLRootEntry is the xmlRoot value registering a data-model subdirectory in zcl.json.
func XMLRootEntry(dataModelDir string) string {
	return ZclXMLRootPrefix + dataModelDir + "/"
}
