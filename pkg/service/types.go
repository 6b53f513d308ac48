package service

// Dependencies holds all external service dependencies that actions can use.
// Components receive this struct and can access only the services they need.
type Dependencies struct {
	Entitlements EntitlementGranter
	Statistics   UserStatisticUpdater
	Publisher    Publisher
}

// NewDependencies creates a new dependencies container.
// Services can be nil if not needed - components should handle nil gracefully.
func NewDependencies() *Dependencies {
	return &Dependencies{}
}

// WithEntitlementGranter sets the entitlement granter service
func (d *Dependencies) WithEntitlementGranter(service EntitlementGranter) *Dependencies {
	d.Entitlements = service
	return d
}

// WithStatisticUpdater sets the user statistic updater service
func (d *Dependencies) WithStatisticUpdater(service UserStatisticUpdater) *Dependencies {
	d.Statistics = service
	return d
}

// WithPublisher sets the message publisher
func (d *Dependencies) WithPublisher(service Publisher) *Dependencies {
	d.Publisher = service
	return d
}
