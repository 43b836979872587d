package environment

import "os"

// GetOpenRouterKey returns the API key for vision and theme extraction calls.
func GetOpenRouterKey() string {
	return os.Getenv("OPENROUTER_API_KEY")
}

// GetOpenAIKey returns the API key for image generation calls.
func GetOpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GetFirebaseKey() string {
	return os.Getenv("FIREBASE_CREDENTIALS_BASE64")
}

func GetFirebaseProjectID() string {
	return os.Getenv("FIREBASE_PROJECT_ID")
}

// GetAdminJWTSecret signs and verifies admin tokens for internal-only routes.
func GetAdminJWTSecret() string {
	return os.Getenv("ADMIN_JWT_SECRET")
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
