//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"lab-seat-reservation/cmd/bootstrap"
	"lab-seat-reservation/cmd/bootstrap/components"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/metrics"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	containersOnce    sync.Once
	postgresContainer testcontainers.Container
	redisContainer    testcontainers.Container
	containersErr     error

	testUser     = "test"
	testPassword = "testpass"
)

var migrationFiles = []string{
	"migrations/001_initial_schema.sql",
	"migrations/002_seed_venues.sql",
	"migrations/003_venue_seat_labels.sql",
}

type ContainerInfo struct {
	Host string
	Port nat.Port
}

type environment struct {
	pool   *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
	cfg    config.Config
}

func setupE2EEnvironment(t *testing.T) environment {
	gin.SetMode(gin.TestMode)
	startContainersOnce(t)

	postgresInfo, err := getContainerHostPort(postgresContainer, "5432/tcp")
	require.NoError(t, err, "PostgreSQLコンテナ情報の取得に失敗")
	redisInfo, err := getContainerHostPort(redisContainer, "6379/tcp")
	require.NoError(t, err, "Redisコンテナ情報の取得に失敗")

	dbConfig := prepareDatabase(t, postgresInfo)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Redis = config.RedisConfig{Host: redisInfo.Host, Port: redisInfo.Port.Port()}

	env := buildE2EApp(t, cfg)

	slog.Info("E2E環境の準備が完了しました",
		"postgres_port", postgresInfo.Port.Port(),
		"redis_port", redisInfo.Port.Port())
	return env
}

func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) config.DBConfig {
	// テストプロセスごとに別のデータベースを作る
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			time.Sleep(min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second))
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempts+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("クリーンアップ用のデータベース接続に失敗しました", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}

	require.NoError(t, applyMigrations(t, dbConfig), "データベースマイグレーションに失敗")
	return dbConfig
}

func applyMigrations(t *testing.T, dbConfig config.DBConfig) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, cleanup, err := db.Connect(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cleanup()

	for _, file := range migrationFiles {
		sqlContent, path, err := readFromRepoRoot(file)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", path, err)
		}
	}
	return nil
}

// go test runs in the package directory, so walk up until the file is found.
func readFromRepoRoot(file string) ([]byte, string, error) {
	var lastErr error
	for _, prefix := range []string{".", "..", filepath.Join("..", ".."), filepath.Join("..", "..", "..")} {
		path := filepath.Join(prefix, file)
		b, err := os.ReadFile(path)
		if err == nil {
			return b, path, nil
		}
		lastErr = err
	}
	return nil, file, fmt.Errorf("failed to read migration file %s: %w", file, lastErr)
}

func buildE2EApp(t *testing.T, cfg config.Config) environment {
	var env environment

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
		bootstrap.SectionsModule,
	)

	// 1プロセスで複数のアプリを起動するため既定レジストリは使わない
	testMetricsModule := fx.Module("testmetrics",
		fx.Provide(func() *metrics.Metrics { return metrics.NewWithRegistry(prometheus.NewRegistry()) }),
	)

	app := fx.New(
		testConfigModule,
		testMetricsModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.RedisModule,
		bootstrap.BrokerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&env.router, &env.pool, &env.redis),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	env.cfg = cfg
	return env
}

func startGenericContainer(req testcontainers.ContainerRequest, timeout time.Duration) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// Containers are shared by every suite in the process and reaped by ryuk.
func startContainersOnce(t *testing.T) {
	containersOnce.Do(func() {
		postgresContainer, containersErr = startGenericContainer(testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}, 3*time.Minute)
		if containersErr != nil {
			return
		}

		redisContainer, containersErr = startGenericContainer(testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}, 2*time.Minute)
	})
	require.NoError(t, containersErr, "コンテナの起動に失敗")
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// SharedSuite is embedded by every e2e suite.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	env := setupE2EEnvironment(s.T())
	s.Router = env.router
	s.DB = env.pool
	s.Redis = env.redis
	s.Config = env.cfg
}

func (s *SharedSuite) SetupSubTest() {
	s.resetState()
}

func (s *SharedSuite) SetupTest() {
	s.resetState()
}

// Venues are reference data from the seed migration and survive resets.
func (s *SharedSuite) resetState() {
	ctx := context.Background()
	_, err := s.DB.Exec(ctx, "TRUNCATE notification_jobs, reservation_seats, reservations, users CASCADE")
	require.NoError(s.T(), err, "Failed to reset database state")
	require.NoError(s.T(), s.Redis.FlushDB(ctx).Err(), "Failed to flush redis")
}
