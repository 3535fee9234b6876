package cmd

const (
	// ConfigFlag Flag to specify the webassets configuration file.
	ConfigFlag = "config"
	// DefaultConfigFile Configuration file picked up from the current directory if ConfigFlag is not set.
	DefaultConfigFile = "webassets.yaml"
	// TempFolderFlag Flag to specify the root of the cache directories, overriding the config file value.
	TempFolderFlag = "temp-folder"
	// RootFolderFlag Flag to specify the folder inside the artifacts that holds the web assets.
	RootFolderFlag = "root"
	// DefaultRootFolder Folder web assets are packaged below in webjars.
	DefaultRootFolder = "META-INF/resources"
	// ArtifactFlag Flag to select the resource artifacts.
	ArtifactFlag = "artifact"
)
