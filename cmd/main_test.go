package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/sbilibin2017/qa-resolver/internal/jwt"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath, tokenSubject := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
	if tokenSubject != "" {
		t.Errorf("expected empty token subject, got %s", tokenSubject)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env", "-t", "local-sub"}
	configPath, tokenSubject := parseFlags()

	if configPath != "myconfig.env" {
		t.Errorf("expected myconfig.env, got %s", configPath)
	}
	if tokenSubject != "local-sub" {
		t.Errorf("expected local-sub, got %s", tokenSubject)
	}
}

func TestIssueDevToken_RoundTrip(t *testing.T) {
	token, err := issueDevToken("local-sub", "testsecret", 60)
	if err != nil {
		t.Fatalf("issueDevToken returned error: %v", err)
	}

	sub, err := jwt.New("testsecret", time.Minute).GetSubject(context.Background(), token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	if sub != "local-sub" {
		t.Errorf("expected subject local-sub, got %s", sub)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-09-01"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !bytes.Contains([]byte(output), []byte("version v1.0.0")) ||
		!bytes.Contains([]byte(output), []byte("commit abcd1234")) ||
		!bytes.Contains([]byte(output), []byte("build 2026-09-01")) {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort, logLevel,
		secretName, dbRegion,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp, err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}

	// Secrets Manager
	if secretName != "" || dbRegion != "ap-northeast-1" {
		t.Errorf("unexpected secrets config: %v/%v", secretName, dbRegion)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "database" {
		t.Errorf("unexpected postgres config")
	}

	// Redis is disabled by default
	if redisHost != "" || redisPort != 6379 || redisDB != 0 || redisPassword != "" {
		t.Errorf("unexpected redis config")
	}

	// Kafka is disabled by default
	if kafkaBrokers != "" || kafkaTopic != "qa-mutations" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaBrokers, kafkaTopic)
	}

	// JWT
	if jwtSecret != "my_super_secret_key" || jwtExp != 3600 {
		t.Errorf("unexpected jwt config")
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")

	os.Setenv("SECRET_NAME", "prod/db-credentials")
	os.Setenv("DB_REGION", "us-west-2")

	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_USER", "admin")
	os.Setenv("POSTGRES_PASSWORD", "secret")
	os.Setenv("POSTGRES_DB", "mydb")

	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_PASSWORD", "redispass")

	os.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	os.Setenv("KAFKA_TOPIC", "mutations")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")

	appHost, appPort, logLevel,
		secretName, dbRegion,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp, err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appHost != "127.0.0.1" || appPort != "9090" || logLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if secretName != "prod/db-credentials" || dbRegion != "us-west-2" {
		t.Errorf("unexpected secrets config")
	}
	if pgHost != "pg.example.com" || pgPort != 5433 || pgUser != "admin" || pgPassword != "secret" || pgDB != "mydb" {
		t.Errorf("unexpected postgres config")
	}
	if redisHost != "redis.example.com" || redisPort != 6380 || redisDB != 2 || redisPassword != "redispass" {
		t.Errorf("unexpected redis config")
	}
	if kafkaBrokers != "broker1:9092,broker2:9092" || kafkaTopic != "mutations" {
		t.Errorf("unexpected kafka config")
	}
	if jwtSecret != "supersecret" || jwtExp != 300 {
		t.Errorf("unexpected jwt config")
	}
}

func TestParseConfig_InvalidPort(t *testing.T) {
	resetEnv()
	os.Setenv("POSTGRES_PORT", "not-a-number")

	_, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Fatal("expected error for invalid POSTGRES_PORT")
	}
}

func TestParseConfig_InvalidJWTExp(t *testing.T) {
	resetEnv()
	os.Setenv("JWT_EXP_SECOND", "soon")

	_, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Fatal("expected error for invalid JWT_EXP_SECOND")
	}
}

// run opens store connections per invocation, so the server comes up
// without any backing containers. Cancelling the parent context must
// shut it down cleanly.
func TestRun_GracefulShutdown(t *testing.T) {
	resetEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx,
			"127.0.0.1", "8097", "debug",
			"", "ap-northeast-1", // secrets disabled
			"localhost", 5432, "user", "password", "database",
			"", 6379, 0, "", // redis disabled
			"", "qa-mutations", // kafka disabled
			"testsecret", 3600,
		)
	}()

	select {
	case <-time.After(5 * time.Second):
		t.Fatal("test timed out")
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected run to succeed, got error: %v", err)
		}
	}
}
