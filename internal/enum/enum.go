package enum

// ── Terminal roles (JWT claim, checked by middleware) ──

const (
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
	RoleKiosk   = "KIOSK"
)

// ── Order-level discount categories ──

const (
	OrderDiscountVoucher = "voucher"
	OrderDiscountSCPWD   = "sc-pwd"
	OrderDiscountManual  = "manual"
)

const (
	ValuePercentage = "percentage"
	ValueFixed      = "fixed"
)

// ── Upgrade slots (wire encoding used by the terminals) ──

const (
	SlotDrink = "drink"
	SlotFries = "fries"
)
