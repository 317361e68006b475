package container

import (
	"torget-app-io/api/configs"
	"torget-app-io/api/internal"
	"torget-app-io/api/internal/common"
	"torget-app-io/api/pkg/controllers"
	"torget-app-io/api/pkg/services"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceContainer wires services to controllers. Everything is constructed
// here from the injected clients; no package initializes connections on load.
type ServiceContainer struct {
	CartService      *services.CartService
	OrderService     *services.OrderService
	FormService      *services.FormService
	MediaService     *services.MediaService
	CheckoutRegistry *services.CheckoutRegistry
	Notifier         *internal.Notifier

	CartController     *controllers.CartController
	CheckoutController *controllers.CheckoutController
	OrderController    *controllers.OrderController
	AdminController    *controllers.AdminController
}

func NewServiceContainer(mongoClient *mongo.Client, redisClient *redis.Client) (*ServiceContainer, error) {
	mediaService, err := services.NewMediaService(
		configs.LoadEnvFor("CLOUDINARY_CLOUDNAME"),
		configs.LoadEnvFor("CLOUDINARY_API_KEY"),
		configs.LoadEnvFor("CLOUDINARY_API_SECRET"),
		configs.LoadEnvFor("CLOUDINARY_UPLOAD_FOLDER"),
	)
	if err != nil {
		return nil, err
	}

	notifier := internal.NewNotifier(redisClient)
	cartService := services.NewCartService(services.NewRedisCartStorage(redisClient))
	orderService := services.NewOrderService(configs.GetCollection(mongoClient, common.ORDER_COLLECTION))
	formService := services.NewFormService(services.NewMongoCollectionWriter(configs.GetDatabase(mongoClient)))
	checkoutRegistry := services.NewCheckoutRegistry()

	return &ServiceContainer{
		CartService:      cartService,
		OrderService:     orderService,
		FormService:      formService,
		MediaService:     mediaService,
		CheckoutRegistry: checkoutRegistry,
		Notifier:         notifier,

		CartController:     controllers.InitCartController(cartService, notifier),
		CheckoutController: controllers.InitCheckoutController(cartService, checkoutRegistry, orderService, notifier),
		OrderController:    controllers.InitOrderController(orderService),
		AdminController:    controllers.InitAdminController(formService, mediaService, notifier),
	}, nil
}
