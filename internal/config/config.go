package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Paths   PathsConfig   `yaml:"paths"`
	Whisper WhisperConfig `yaml:"whisper"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	YtDlp   YtDlpConfig   `yaml:"ytdlp"`
	LLM     LLMConfig     `yaml:"llm"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Images  ImagesConfig  `yaml:"images"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	MaxUploadMB        int      `yaml:"max_upload_mb"`
	AllowedDomains     []string `yaml:"allowed_domains"`
	CORSOrigins        []string `yaml:"cors_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
}

type PathsConfig struct {
	Outputs      string `yaml:"outputs"`
	Uploads      string `yaml:"uploads"`
	StaticImages string `yaml:"static_images"`
	Temp         string `yaml:"temp"`
	Inbox        string `yaml:"inbox"`
}

type WhisperConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	ModelsDir    string `yaml:"models_dir"`
	DefaultModel string `yaml:"default_model"`
	Language     string `yaml:"language"`
	Prompt       string `yaml:"prompt"`
	Threads      int    `yaml:"threads"`
	BestOf       int    `yaml:"best_of"`
}

type FFmpegConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	ProbePath   string `yaml:"probe_path"`
	SampleRate  int    `yaml:"sample_rate"`
	AudioFilter string `yaml:"audio_filter"`
}

type YtDlpConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
}

type LLMConfig struct {
	Provider    string       `yaml:"provider"`
	Temperature float64      `yaml:"temperature"`
	TopP        float64      `yaml:"top_p"`
	Ollama      OllamaConfig `yaml:"ollama"`
	Gemini      GeminiConfig `yaml:"gemini"`
}

type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type JobsConfig struct {
	Capacity         int           `yaml:"capacity"`
	MaxConcurrent    int           `yaml:"max_concurrent"`
	AcceleratorSlots int           `yaml:"accelerator_slots"`
	Store            string        `yaml:"store"`
	RedisURL         string        `yaml:"redis_url"`
	Retention        time.Duration `yaml:"retention"`
}

type ImagesConfig struct {
	MaxImages    int     `yaml:"max_images"`
	MinDimension int     `yaml:"min_dimension"`
	ResizeFactor float64 `yaml:"resize_factor"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate rejects impossible values and fills defaults for everything else.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "":
		c.LLM.Provider = "ollama"
	case "ollama", "gemini":
	default:
		return fmt.Errorf("llm.provider %q must be one of ollama, gemini", c.LLM.Provider)
	}
	if c.LLM.Provider == "gemini" && len(c.LLM.Gemini.APIKeys) == 0 {
		return fmt.Errorf("llm.gemini.api_keys is required for the gemini provider")
	}

	switch c.Jobs.Store {
	case "":
		c.Jobs.Store = "memory"
	case "memory":
	case "redis":
		if c.Jobs.RedisURL == "" {
			return fmt.Errorf("jobs.redis_url is required for the redis store")
		}
	default:
		return fmt.Errorf("jobs.store %q must be one of memory, redis", c.Jobs.Store)
	}

	if c.Jobs.Capacity < 0 {
		return fmt.Errorf("jobs.capacity must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Images.ResizeFactor < 0 || c.Images.ResizeFactor > 1 {
		return fmt.Errorf("images.resize_factor must be within (0, 1]")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 50
	}
	if len(c.Server.AllowedDomains) == 0 {
		c.Server.AllowedDomains = []string{"youtube.com", "youtu.be", "vimeo.com", "dailymotion.com", "twitch.tv"}
	}
	if c.Server.RateLimitPerMinute == 0 {
		c.Server.RateLimitPerMinute = 30
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 5
	}

	if c.Paths.Outputs == "" {
		c.Paths.Outputs = "outputs"
	}
	if c.Paths.Uploads == "" {
		c.Paths.Uploads = "uploads"
	}
	if c.Paths.StaticImages == "" {
		c.Paths.StaticImages = "static/images"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelsDir == "" {
		c.Whisper.ModelsDir = "models"
	}
	if c.Whisper.DefaultModel == "" {
		c.Whisper.DefaultModel = "turbo"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.BestOf == 0 {
		c.Whisper.BestOf = 1
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}

	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.AudioFormat == "" {
		c.YtDlp.AudioFormat = "mp3"
	}
	if c.YtDlp.AudioQuality == "" {
		c.YtDlp.AudioQuality = "192K"
	}

	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = 0.9
	}
	if c.LLM.Ollama.Host == "" {
		c.LLM.Ollama.Host = "http://localhost:11434"
	}
	if c.LLM.Ollama.Model == "" {
		c.LLM.Ollama.Model = "llama3.2:3b"
	}
	if c.LLM.Gemini.Model == "" {
		c.LLM.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Jobs.Capacity == 0 {
		c.Jobs.Capacity = 256
	}
	if c.Jobs.MaxConcurrent <= 0 {
		c.Jobs.MaxConcurrent = 2
	}
	if c.Jobs.AcceleratorSlots <= 0 {
		c.Jobs.AcceleratorSlots = 1
	}
	if c.Jobs.Retention == 0 {
		c.Jobs.Retention = 24 * time.Hour
	}

	if c.Images.MaxImages == 0 {
		c.Images.MaxImages = 6
	}
	if c.Images.MinDimension == 0 {
		c.Images.MinDimension = 300
	}
	if c.Images.ResizeFactor == 0 {
		c.Images.ResizeFactor = 0.7
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
