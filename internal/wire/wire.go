package wire

import (
	"RedBlack/internal/api"
	"RedBlack/internal/api/config"
	"RedBlack/internal/api/handler"
	"RedBlack/internal/job"
	"RedBlack/internal/pkg/cron"
	"RedBlack/internal/pkg/es"
	"RedBlack/internal/pkg/imagehost"
	"RedBlack/internal/pkg/kafka"
	"RedBlack/internal/pkg/mongo"
	"RedBlack/internal/pkg/redis"
	"RedBlack/internal/repository"
	"RedBlack/internal/service"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // kafka.enable=false 时为 nil
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, esClient *elasticsearch.TypedClient, cfg *config.Config) (*ApplicationContainer, error) {
	timeout := time.Duration(cfg.DB.QueryTimeout) * time.Second

	repos := repository.NewRepos(db)
	txManager := repository.NewTxManager(db)
	sysBoxRepo := mongo.NewSysBoxRepo(mongoDB)
	postESRepo := es.NewPostRepo(esClient)

	locker := redis.NewLocker()
	viewCounter := redis.NewViewCounter()

	uploader, err := imagehost.New(cfg.ImageHost)
	if err != nil {
		return nil, err
	}

	policy := service.ReactionPolicy{
		Merchant: service.ParseRepeatPolicy(cfg.Reaction.MerchantRepeat, service.RepeatReject),
		Post:     service.ParseRepeatPolicy(cfg.Reaction.PostRepeat, service.RepeatToggle),
	}

	merchantService := service.NewMerchantService(txManager, repos, locker, timeout)
	reactionService := service.NewReactionService(txManager, repos, policy, timeout)
	ratingService := service.NewRatingService(txManager, repos, timeout)
	commentService := service.NewCommentService(txManager, repos, timeout)
	postService := service.NewPostService(repos, viewCounter, postESRepo, timeout)
	mediaService := service.NewMediaService(uploader)
	sysBoxService := service.NewSysBoxService(sysBoxRepo, repos.Users)

	handlers := &api.HandlersGroup{
		MerchantHandler: handler.NewMerchantHandler(merchantService),
		ReactionHandler: handler.NewReactionHandler(reactionService),
		RatingHandler:   handler.NewRatingHandler(ratingService),
		CommentHandler:  handler.NewCommentHandler(commentService),
		PostHandler:     handler.NewPostHandler(postService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
		SysBoxHandler:   handler.NewSysBoxHandler(sysBoxService),
		Revocation:      redis.NewTokenBlacklist(),
		CORSOrigins:     cfg.Server.CORSOrigins,
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewPostViewFlushJob(viewCounter, txManager, locker),
		job.NewCounterAuditJob(repos),
	)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		kafkaMgr, err = kafka.NewConsumerManager(cfg, kafka.Handlers{
			Reactions: kafka.NewReactionsHandler(repos.Merchants, repos.Posts, sysBoxRepo),
			Ratings:   kafka.NewRatingsHandler(repos.Merchants, sysBoxRepo),
			Comments:  kafka.NewCommentsHandler(repos.Posts, sysBoxRepo),
			Posts:     kafka.NewPostsHandler(postESRepo),
		})
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
