package config

const (
	defaultLogFile           = "openleaf.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 3000
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/openleaf"
	defaultPublicDir         = "public"
	defaultWorkerPoolSize    = 4
	defaultMaxUploadSize     = 50
	defaultCoverQuality      = 75
)

// Book files are PDF only; covers may be any of the usual image types.
var (
	defaultBookTypes  = []string{"pdf"}
	defaultCoverTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store uploaded books and covers
	Data string `mapstructure:"data"`
	// PublicDir is the directory with the static frontend assets
	PublicDir      string `mapstructure:"public_dir"`
	WorkerPoolSize int    `mapstructure:"worker_pool_size"`
	// MaxUploadSize is the maximum size of an upload, in MiB
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
	// BookTypes is the accepted book file extensions
	BookTypes []string `mapstructure:"book_types"`
	// CoverTypes is the accepted cover image extensions
	CoverTypes []string `mapstructure:"cover_types"`
	// CoverQuality is the webp quality used when converting covers
	CoverQuality int `mapstructure:"cover_quality"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		DSN:               defaultData + "/library.db",
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		PublicDir:         defaultPublicDir,
		WorkerPoolSize:    defaultWorkerPoolSize,
		MaxUploadSize:     defaultMaxUploadSize,
		BookTypes:         defaultBookTypes,
		CoverTypes:        defaultCoverTypes,
		CoverQuality:      defaultCoverQuality,
	}
	return Opts
}
