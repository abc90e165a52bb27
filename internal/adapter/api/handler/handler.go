package handler

import (
	"nuptio/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	categoryHandler     *CategoryHandler
	storefrontHandler   *StorefrontHandler
	favoriteHandler     *FavoriteHandler
	quoteHandler        *QuoteHandler
	subscriptionHandler *SubscriptionHandler
	conversationHandler *ConversationHandler
	mediaHandler        *MediaHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	storefrontUseCase *usecase.StorefrontUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	quoteUseCase *usecase.QuoteUseCase,
	subscriptionUseCase *usecase.SubscriptionUseCase,
	conversationUseCase *usecase.ConversationUseCase,
	mediaUseCase *usecase.MediaUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	storefrontHandler = NewStorefrontHandler(storefrontUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	quoteHandler = NewQuoteHandler(quoteUseCase)
	subscriptionHandler = NewSubscriptionHandler(subscriptionUseCase)
	conversationHandler = NewConversationHandler(conversationUseCase)
	mediaHandler = NewMediaHandler(mediaUseCase)
}

func GetAuthHandler() *AuthHandler                 { return authHandler }
func GetUserHandler() *UserHandler                 { return userHandler }
func GetCategoryHandler() *CategoryHandler         { return categoryHandler }
func GetStorefrontHandler() *StorefrontHandler     { return storefrontHandler }
func GetFavoriteHandler() *FavoriteHandler         { return favoriteHandler }
func GetQuoteHandler() *QuoteHandler               { return quoteHandler }
func GetSubscriptionHandler() *SubscriptionHandler { return subscriptionHandler }
func GetConversationHandler() *ConversationHandler { return conversationHandler }
func GetMediaHandler() *MediaHandler               { return mediaHandler }
