package deps

import (
	"context"
	"fmt"
	"resetpass/internal/config"
	daudit "resetpass/internal/core/domain/audit"
	ddirectory "resetpass/internal/core/domain/directory"
	dl "resetpass/internal/core/domain/logging"
	dmail "resetpass/internal/core/domain/mail"
	drl "resetpass/internal/core/domain/rate_limiter"
	"resetpass/internal/core/domain/reset"
	dbaudit "resetpass/internal/db/audit"
	"resetpass/internal/implementations/directory"
	"resetpass/internal/implementations/keygen"
	"resetpass/internal/implementations/logging"
	"resetpass/internal/implementations/mailer"
	"resetpass/internal/implementations/notification"
	ratelimiter "resetpass/internal/implementations/rate_limiter"
	"resetpass/internal/implementations/resetstore"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now func() time.Time

	Directory       ddirectory.Directory
	ResetRepository reset.Repository
	AuditLog        daudit.Log

	RateLimiter drl.RateLimiter

	MailSender        dmail.Sender
	Notifier          reset.Notifier
	TokenGenerator    reset.TokenGenerator
	PasswordGenerator reset.PasswordGenerator
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.Directory = directory.NewLDAP(
		directory.Config{
			URL:                   deps.Config.LdapURL,
			BaseDN:                deps.Config.LdapBaseDN,
			BindDN:                deps.Config.LdapBindDN,
			BindPassword:          deps.Config.LdapBindPassword,
			Timeout:               deps.Config.LdapTimeout,
			InsecureSkipTLSVerify: deps.Config.LdapInsecureSkipTLSVerify,
		},
		deps.Logger,
	)
	deps.ResetRepository = resetstore.NewRedis(deps.Redis)
	deps.AuditLog = dbaudit.NewPgxAuditLog(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.initMailSender()
	deps.Notifier = notification.New(deps.MailSender, deps.Config.ConfirmBaseURL)

	generator := keygen.NewGenerator(deps.Config.TokenLength, deps.Config.PasswordLength)
	deps.TokenGenerator = generator
	deps.PasswordGenerator = generator

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initMailSender() {
	if !deps.Config.NotificationsEnabled || deps.Config.MailTransport == config.MailTransportDisabled {
		deps.Logger.Info(context.Background(), "Mail notifications are disabled.")
		deps.MailSender = mailer.NewDisabled()
		return
	}

	switch deps.Config.MailTransport {
	case config.MailTransportSMTP:
		deps.MailSender = mailer.NewSMTP(deps.Config.SMTPAddress, deps.Config.MailFrom, deps.Config.SMTPTimeout)
	case config.MailTransportSES:
		deps.initAwsConfig()
		deps.MailSender = mailer.NewSES(deps.AwsConfig, deps.Config.MailFrom)
	default:
		panic(fmt.Sprintf("unknown mail transport %q", deps.Config.MailTransport))
	}
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
