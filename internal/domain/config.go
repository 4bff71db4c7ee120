package domain

type Config struct {
	Version       string
	ConfigPath    string
	CheckInterval int                       `yaml:"checkInterval"`
	WatchedSeries map[string]*WatchedSeries `yaml:"watchedSeries"`
	LogPath       string                    `yaml:"logPath"`
	LogLevel      string                    `yaml:"logLevel"`
	LogMaxSize    int                       `yaml:"logMaxSize"` // in megabytes
	LogMaxBackups int                       `yaml:"logMaxBackups"`
}

type WatchedSeries struct {
	Source string `yaml:"source"`
	Series string `yaml:"series"`
}
