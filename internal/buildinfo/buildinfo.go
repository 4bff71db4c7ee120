package buildinfo

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)
