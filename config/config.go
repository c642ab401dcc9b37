package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// postgres или sqlite (локальная разработка без сервера БД)
	DBDriver      string
	DBPath        string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	Port          string
	RedisAddr     string
	RedisPassword string
	// Загружаемые картинки рецептов
	MediaRoot string
	MediaURL  string
	// TTF-шрифт с кириллицей для PDF со списком покупок
	PDFFontPath string
	// Начальные данные справочников
	IngredientsFile string
	TagsFile        string
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPass        string
	CORSOrigins     []string
	// cron-выражение для очистки неиспользуемых картинок, пустое - не запускать
	MediaCleanupSchedule string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	dbHost := os.Getenv("DB_HOST")
	return &Config{
		DBDriver:             getenvOrDefault("DB_DRIVER", "postgres"),
		DBPath:               getenvOrDefault("DB_PATH", "./foodgram.db"),
		DBHost:               dbHost,
		DBPort:               getenvOrDefault("DB_PORT", "5432"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Port:                 getenvOrDefault("PORT", "8080"),
		RedisAddr:            getenvOrDefault("REDIS_ADDR", dbHost+":6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		MediaRoot:            getenvOrDefault("MEDIA_ROOT", "./media"),
		MediaURL:             withTrailingSlash(getenvOrDefault("MEDIA_URL", "/media/")),
		PDFFontPath:          getenvOrDefault("PDF_FONT_PATH", "./data/fonts/DejaVuSans.ttf"),
		IngredientsFile:      getenvOrDefault("INGREDIENTS_FILE", "./data/ingredients.json"),
		TagsFile:             getenvOrDefault("TAGS_FILE", "./data/tags.json"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getenvOrDefault("SMTP_PORT", "587"),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPass:             os.Getenv("SMTP_PASS"),
		CORSOrigins:          splitList(getenvOrDefault("CORS_ORIGINS", "http://localhost:3000")),
		MediaCleanupSchedule: getenvOrDefault("MEDIA_CLEANUP_SCHEDULE", "0 3 * * *"),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func withTrailingSlash(v string) string {
	if strings.HasSuffix(v, "/") {
		return v
	}
	return v + "/"
}
