// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// setDefaultConfig sets viper defaults for every configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "lecturenotes")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/lecturenotes.log")
	viper.SetDefault("main.log.rotation", string(RotationDaily))
	viper.SetDefault("main.log.maxsize", int64(10*1024*1024))

	setModuleLogDefaults("engine", true)
	setModuleLogDefaults("audio", true)
	setModuleLogDefaults("models", true)
	setModuleLogDefaults("notestore", true)
	setModuleLogDefaults("endurance", true)
	setModuleLogDefaults("hostbridge", true)
	setModuleLogDefaults("transcript", false)

	viper.SetDefault("engine.tickintervalmillis", DefaultTickIntervalMillis)
	viper.SetDefault("engine.modelsdir", "models")
	viper.SetDefault("engine.dbpath", "lecturenotes.db")

	viper.SetDefault("audio.devicename", "default")
	viper.SetDefault("audio.bufferframes", 512)

	viper.SetDefault("models.asrbackend", "heuristic")
	viper.SetDefault("models.embedderbackend", "heuristic")
	viper.SetDefault("models.asrmodelfile", "ggml-tiny.en.bin")
	viper.SetDefault("models.embeddermodelfile", "embedder.tflite")

	viper.SetDefault("store.ftsenabled", true)
	viper.SetDefault("store.passphrase", "lecturenotes-local-passphrase")

	viper.SetDefault("endurance.cpuhighcelsius", 75.0)
	viper.SetDefault("endurance.cpulowcelsius", 65.0)
	viper.SetDefault("endurance.batteryhighcelsius", 42.0)
	viper.SetDefault("endurance.batterylowcelsius", 38.0)
}

// setModuleLogDefaults sets default values for a per-module log configuration.
// Mirrors the teacher's module-scoped logging knobs even though only a
// handful of modules exist in this domain.
func setModuleLogDefaults(module string, enabled bool) {
	prefix := "logging.modules." + module
	viper.SetDefault(prefix+".enabled", enabled)
	viper.SetDefault(prefix+".file_path", "logs/"+module+".log")
	viper.SetDefault(prefix+".level", "info")
}
