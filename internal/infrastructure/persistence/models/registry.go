package models

// All returns every persistence model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&SessionModel{},
		&OAuthAccountModel{},
		&PlanModel{},
		&PlanToolModel{},
		&SubscriptionModel{},
		&UsageCounterModel{},
		&FavoriteModel{},
		&UserPreferenceModel{},
		&ToolRunEventModel{},
	}
}
