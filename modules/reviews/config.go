package reviews

// Config holds the settings of the account review pages.
type Config struct {
	// AllowUsersManageReviews enables the review pages in the customer account.
	AllowUsersManageReviews bool `env:"REVIEWS_ALLOW_USERS_MANAGE" envDefault:"false"`

	ShopID       string `env:"REVIEWS_SHOP_ID" envDefault:"1"`
	ItemsPerPage int    `env:"REVIEWS_ITEMS_PER_PAGE" envDefault:"10"`

	// BasePath is the URL prefix the review list page is mounted under.
	BasePath      string `env:"REVIEWS_BASE_PATH" envDefault:"/"`
	DashboardPath string `env:"REVIEWS_DASHBOARD_PATH" envDefault:"/account"`
}

// DefaultConfig returns the settings used when nothing is configured,
// with the review pages enabled.
func DefaultConfig() Config {
	return Config{
		AllowUsersManageReviews: true,
		ShopID:                  "1",
		ItemsPerPage:            DefaultItemsPerPage,
		BasePath:                "/",
		DashboardPath:           "/account",
	}
}

func (c Config) pageSize() int {
	if c.ItemsPerPage <= 0 {
		return DefaultItemsPerPage
	}
	return c.ItemsPerPage
}
