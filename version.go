package dbfacade

// Substituted at build time:
//
//	go build -ldflags "-X dbfacade.version=1.2.3"
var (
	version    = "0.0.0"
	components = "core,query,dialect,sqlite,mysql,migration,config"
)

// Version returns the library version as a "G.M.m" triple.
func Version() string { return version }

// Components returns the comma-separated list of built components.
func Components() string { return components }
