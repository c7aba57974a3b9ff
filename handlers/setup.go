package handlers

import (
	bookingRepo "opaleka/database/repository/booking"
	catalogRepo "opaleka/database/repository/catalog"
	notificationRepo "opaleka/database/repository/notification"
	profileRepo "opaleka/database/repository/profile"
	providerRepo "opaleka/database/repository/provider"
	reviewRepo "opaleka/database/repository/review"
	userRepo "opaleka/database/repository/user"
	"opaleka/services/billing"
	"opaleka/services/booking"
	"opaleka/services/notification"
	"opaleka/services/provider"
	"opaleka/services/review"
	"opaleka/services/user"

	"opaleka/config"
)

// Handler services, wired once at startup after the database connection is
// established.
var (
	BookingService      booking.Service
	ReviewService       review.Service
	ProviderService     provider.Service
	UserService         user.Service
	NotificationService notification.Service
	BillingService      billing.Service
	ServiceCatalog      catalogRepo.ServiceRepository
	TipCatalog          catalogRepo.TipRepository
	Users               userRepo.UserRepository
	Providers           providerRepo.ProviderDetailsRepository
	Bookings            bookingRepo.BookingRepository
)

// Setup constructs the repository and service graph.
func Setup() {
	Users = userRepo.NewMongoUserRepo()
	Bookings = bookingRepo.NewMongoBookingRepo()
	reviews := reviewRepo.NewMongoReviewRepo()
	Providers = providerRepo.NewMongoProviderDetailsRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()
	profiles := profileRepo.NewMongoProfileRepo()
	ServiceCatalog = catalogRepo.NewMongoServiceRepo()
	TipCatalog = catalogRepo.NewMongoTipRepo()

	NotificationService = notification.NewDefaultService(notifications, notification.NewMailer())
	ProviderService = provider.NewDefaultService(Providers, Users, reviews, profiles, NotificationService,
		func() float64 { return config.AppConfig.ActivationFee })
	BookingService = booking.NewDefaultService(Bookings, Users, ProviderService, NotificationService)
	ReviewService = review.NewDefaultService(reviews, Bookings)
	UserService = user.NewDefaultService(Users, profiles, ProviderService)
	BillingService = billing.NewStripeService()
}
