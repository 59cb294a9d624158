package cmd

// Config carries all runtime settings for the dispatch service.
// Values come from the environment; see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// CommissionRate is the platform cut as a decimal fraction, e.g. "0.15".
	CommissionRate string
	// CourierBaseFee and CourierPerKmFee price a platform delivery, e.g. "50.00" and "10.00".
	CourierBaseFee  string
	CourierPerKmFee string

	// EarningsHoldHours is how long a settled entry stays pending before release.
	EarningsHoldHours int
	// QrTTLMinutes and OtpTTLMinutes bound verification code lifetimes.
	QrTTLMinutes  int
	OtpTTLMinutes int
	// DispatchMaxWaitMinutes is how long an order may sit unassigned
	// before the sweep escalates it as stalled.
	DispatchMaxWaitMinutes int
}
