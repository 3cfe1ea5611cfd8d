package connect2pay

// Transaction carries the data of a payment to create. A fresh Transaction
// is built per payment attempt from the host's cart and customer data and
// discarded once the shopper redirect URL has been produced; it is never
// persisted and is not safe for concurrent use.
//
// Setters for free-text fields silently truncate to the maximum length the
// API accepts instead of rejecting the value. Some getters substitute the
// "NA"/"ZZ" placeholders when anti-fraud data is required but unknown; the
// substitution happens on read only and never alters the stored value.
type Transaction struct {
	secure3d *bool

	// Customer fields
	shopperID             string
	shopperEmail          string
	shipToFirstName       string
	shipToLastName        string
	shipToCompany         string
	shipToPhone           string
	shipToAddress         string
	shipToState           string
	shipToZipcode         string
	shipToCity            string
	shipToCountryCode     string
	shopperFirstName      string
	shopperLastName       string
	shopperPhone          string
	shopperAddress        string
	shopperState          string
	shopperZipcode        string
	shopperCity           string
	shopperCountryCode    string
	shopperBirthDate      string
	shopperIDNumber       string
	shopperCompany        string
	shopperLoyaltyProgram string

	// Order fields
	orderID                   string
	orderDescription          string
	currency                  string
	amount                    int64
	orderTotalWithoutShipping int64
	orderShippingPrice        int64
	orderDiscount             int64
	orderFOLanguage           string
	orderCartContent          []CartProduct

	// Shipping fields
	shippingType string
	shippingName string

	// Payment detail fields
	paymentType        string
	provider           string
	operation          string
	paymentMode        string
	offerID            int64
	subscriptionType   string
	trialPeriod        string
	rebillAmount       int64
	rebillPeriod       string
	rebillMaxIteration int64

	// Template and control fields
	ctrlRedirectURL          string
	ctrlCallbackURL          string
	ctrlCustomData           string
	timeOut                  string
	merchantNotification     *bool
	merchantNotificationTo   string
	merchantNotificationLang string
	themeID                  int64
}

// CartProduct is one cart line embedded in the transaction request.
type CartProduct struct {
	ID           int64   `json:"CartProductId"`
	Name         string  `json:"CartProductName"`
	UnitPrice    float64 `json:"CartProductUnitPrice"`
	Quantity     int64   `json:"CartProductQuantity"`
	Brand        string  `json:"CartProductBrand"`
	MPN          string  `json:"CartProductMPN"`
	CategoryName string  `json:"CartProductCategoryName"`
	CategoryID   int64   `json:"CartProductCategoryID"`
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// truncate limits s to max runes. Field sizes are defined over characters,
// not bytes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}

func (t *Transaction) SetSecure3D(v bool) *Transaction { t.secure3d = &v; return t }

func (t *Transaction) SetShopperID(v string) *Transaction {
	t.shopperID = truncate(v, 32)
	return t
}

func (t *Transaction) ShopperID() string { return t.shopperID }

func (t *Transaction) SetShopperEmail(v string) *Transaction {
	t.shopperEmail = truncate(v, 100)
	return t
}

func (t *Transaction) ShopperEmail() string { return t.shopperEmail }

func (t *Transaction) SetShipToFirstName(v string) *Transaction {
	t.shipToFirstName = truncate(v, 35)
	return t
}

func (t *Transaction) SetShipToLastName(v string) *Transaction {
	t.shipToLastName = truncate(v, 35)
	return t
}

func (t *Transaction) SetShipToCompany(v string) *Transaction {
	t.shipToCompany = truncate(v, 128)
	return t
}

func (t *Transaction) SetShipToPhone(v string) *Transaction {
	t.shipToPhone = truncate(v, 20)
	return t
}

func (t *Transaction) SetShipToAddress(v string) *Transaction {
	t.shipToAddress = truncate(v, 255)
	return t
}

func (t *Transaction) SetShipToState(v string) *Transaction {
	t.shipToState = truncate(v, 30)
	return t
}

func (t *Transaction) SetShipToZipcode(v string) *Transaction {
	t.shipToZipcode = truncate(v, 10)
	return t
}

func (t *Transaction) SetShipToCity(v string) *Transaction {
	t.shipToCity = truncate(v, 50)
	return t
}

func (t *Transaction) SetShipToCountryCode(v string) *Transaction {
	t.shipToCountryCode = truncate(v, 2)
	return t
}

func (t *Transaction) SetShopperFirstName(v string) *Transaction {
	t.shopperFirstName = truncate(v, 35)
	return t
}

func (t *Transaction) SetShopperLastName(v string) *Transaction {
	t.shopperLastName = truncate(v, 35)
	return t
}

// ShopperLastName falls back to "NA" when unset.
func (t *Transaction) ShopperLastName() string { return orNA(t.shopperLastName) }

func (t *Transaction) SetShopperPhone(v string) *Transaction {
	t.shopperPhone = truncate(v, 20)
	return t
}

// ShopperPhone falls back to "NA" when unset.
func (t *Transaction) ShopperPhone() string { return orNA(t.shopperPhone) }

func (t *Transaction) SetShopperAddress(v string) *Transaction {
	t.shopperAddress = truncate(v, 255)
	return t
}

// ShopperAddress falls back to "NA" when unset.
func (t *Transaction) ShopperAddress() string { return orNA(t.shopperAddress) }

func (t *Transaction) SetShopperState(v string) *Transaction {
	t.shopperState = truncate(v, 30)
	return t
}

// ShopperState falls back to "NA" when unset.
func (t *Transaction) ShopperState() string { return orNA(t.shopperState) }

func (t *Transaction) SetShopperZipcode(v string) *Transaction {
	t.shopperZipcode = truncate(v, 10)
	return t
}

// ShopperZipcode falls back to "NA" when unset.
func (t *Transaction) ShopperZipcode() string { return orNA(t.shopperZipcode) }

func (t *Transaction) SetShopperCity(v string) *Transaction {
	t.shopperCity = truncate(v, 50)
	return t
}

// ShopperCity falls back to "NA" when unset.
func (t *Transaction) ShopperCity() string { return orNA(t.shopperCity) }

func (t *Transaction) SetShopperCountryCode(v string) *Transaction {
	t.shopperCountryCode = truncate(v, 2)
	return t
}

// ShopperCountryCode falls back to the "ZZ" unknown-country code when unset.
func (t *Transaction) ShopperCountryCode() string {
	if t.shopperCountryCode == "" {
		return UnavailableCountry
	}
	return t.shopperCountryCode
}

func (t *Transaction) SetShopperBirthDate(v string) *Transaction {
	t.shopperBirthDate = truncate(v, 8)
	return t
}

func (t *Transaction) SetShopperIDNumber(v string) *Transaction {
	t.shopperIDNumber = truncate(v, 32)
	return t
}

func (t *Transaction) SetShopperCompany(v string) *Transaction {
	t.shopperCompany = truncate(v, 128)
	return t
}

func (t *Transaction) SetShopperLoyaltyProgram(v string) *Transaction {
	t.shopperLoyaltyProgram = v
	return t
}

func (t *Transaction) SetOrderID(v string) *Transaction { t.orderID = v; return t }

func (t *Transaction) OrderID() string { return t.orderID }

func (t *Transaction) SetOrderDescription(v string) *Transaction {
	t.orderDescription = truncate(v, 500)
	return t
}

func (t *Transaction) SetCurrency(v string) *Transaction { t.currency = v; return t }

func (t *Transaction) Currency() string { return t.currency }

func (t *Transaction) SetAmount(v int64) *Transaction { t.amount = v; return t }

// Amount returns the transaction amount in minor currency units.
func (t *Transaction) Amount() int64 { return t.amount }

func (t *Transaction) SetOrderTotalWithoutShipping(v int64) *Transaction {
	t.orderTotalWithoutShipping = v
	return t
}

func (t *Transaction) SetOrderShippingPrice(v int64) *Transaction {
	t.orderShippingPrice = v
	return t
}

func (t *Transaction) SetOrderDiscount(v int64) *Transaction { t.orderDiscount = v; return t }

func (t *Transaction) SetOrderFOLanguage(v string) *Transaction { t.orderFOLanguage = v; return t }

func (t *Transaction) OrderCartContent() []CartProduct { return t.orderCartContent }

func (t *Transaction) SetOrderCartContent(products []CartProduct) *Transaction {
	t.orderCartContent = products
	return t
}

// AddCartProduct appends one line to the cart content.
func (t *Transaction) AddCartProduct(p CartProduct) *Transaction {
	t.orderCartContent = append(t.orderCartContent, p)
	return t
}

// SetDefaultCartContent installs a placeholder cart line, to be used when
// the anti-fraud system is enabled and no real cart is known.
func (t *Transaction) SetDefaultCartContent() *Transaction {
	t.orderCartContent = []CartProduct{{
		ID:           0,
		Name:         Unavailable,
		UnitPrice:    0,
		Quantity:     1,
		Brand:        Unavailable,
		MPN:          Unavailable,
		CategoryName: Unavailable,
		CategoryID:   0,
	}}
	return t
}

func (t *Transaction) SetShippingType(v string) *Transaction { t.shippingType = v; return t }

func (t *Transaction) ShippingType() string { return t.shippingType }

func (t *Transaction) SetShippingName(v string) *Transaction { t.shippingName = v; return t }

func (t *Transaction) SetPaymentType(v string) *Transaction { t.paymentType = v; return t }

// PaymentType defaults to CreditCard when unset.
func (t *Transaction) PaymentType() string {
	if t.paymentType == "" {
		return PaymentTypeCreditCard
	}
	return t.paymentType
}

func (t *Transaction) SetProvider(v string) *Transaction { t.provider = v; return t }

func (t *Transaction) SetOperation(v string) *Transaction { t.operation = v; return t }

func (t *Transaction) SetPaymentMode(v string) *Transaction { t.paymentMode = v; return t }

func (t *Transaction) PaymentMode() string { return t.paymentMode }

func (t *Transaction) SetOfferID(v int64) *Transaction { t.offerID = v; return t }

func (t *Transaction) SetSubscriptionType(v string) *Transaction {
	t.subscriptionType = v
	return t
}

func (t *Transaction) SetTrialPeriod(v string) *Transaction { t.trialPeriod = v; return t }

func (t *Transaction) SetRebillAmount(v int64) *Transaction { t.rebillAmount = v; return t }

func (t *Transaction) SetRebillPeriod(v string) *Transaction { t.rebillPeriod = v; return t }

func (t *Transaction) SetRebillMaxIteration(v int64) *Transaction {
	t.rebillMaxIteration = v
	return t
}

func (t *Transaction) SetCtrlRedirectURL(v string) *Transaction { t.ctrlRedirectURL = v; return t }

func (t *Transaction) SetCtrlCallbackURL(v string) *Transaction { t.ctrlCallbackURL = v; return t }

func (t *Transaction) SetCtrlCustomData(v string) *Transaction { t.ctrlCustomData = v; return t }

func (t *Transaction) CtrlCustomData() string { return t.ctrlCustomData }

// SetTimeOut sets the payment link validity as an ISO 8601 duration,
// for example P2D for two days or P1M for one month.
func (t *Transaction) SetTimeOut(v string) *Transaction { t.timeOut = v; return t }

func (t *Transaction) SetMerchantNotification(v bool) *Transaction {
	t.merchantNotification = &v
	return t
}

func (t *Transaction) SetMerchantNotificationTo(v string) *Transaction {
	t.merchantNotificationTo = v
	return t
}

func (t *Transaction) SetMerchantNotificationLang(v string) *Transaction {
	t.merchantNotificationLang = v
	return t
}

func (t *Transaction) SetThemeID(v int64) *Transaction { t.themeID = v; return t }

// requestPayload is the allow-listed wire form of a Transaction. Field
// order matches the order the payment page expects; optional fields that
// were never set are omitted entirely, not sent as null.
type requestPayload struct {
	APIVersion                string        `json:"apiVersion"`
	ShopperID                 string        `json:"shopperID,omitempty"`
	ShopperEmail              string        `json:"shopperEmail,omitempty"`
	ShipToFirstName           string        `json:"shipToFirstName,omitempty"`
	ShipToLastName            string        `json:"shipToLastName,omitempty"`
	ShipToCompany             string        `json:"shipToCompany,omitempty"`
	ShipToPhone               string        `json:"shipToPhone,omitempty"`
	ShipToAddress             string        `json:"shipToAddress,omitempty"`
	ShipToState               string        `json:"shipToState,omitempty"`
	ShipToZipcode             string        `json:"shipToZipcode,omitempty"`
	ShipToCity                string        `json:"shipToCity,omitempty"`
	ShipToCountryCode         string        `json:"shipToCountryCode,omitempty"`
	ShopperFirstName          string        `json:"shopperFirstName,omitempty"`
	ShopperLastName           string        `json:"shopperLastName,omitempty"`
	ShopperPhone              string        `json:"shopperPhone,omitempty"`
	ShopperAddress            string        `json:"shopperAddress,omitempty"`
	ShopperState              string        `json:"shopperState,omitempty"`
	ShopperZipcode            string        `json:"shopperZipcode,omitempty"`
	ShopperCity               string        `json:"shopperCity,omitempty"`
	ShopperCountryCode        string        `json:"shopperCountryCode,omitempty"`
	ShopperBirthDate          string        `json:"shopperBirthDate,omitempty"`
	ShopperIDNumber           string        `json:"shopperIDNumber,omitempty"`
	ShopperCompany            string        `json:"shopperCompany,omitempty"`
	ShopperLoyaltyProgram     string        `json:"shopperLoyaltyProgram,omitempty"`
	OrderID                   string        `json:"orderID,omitempty"`
	OrderDescription          string        `json:"orderDescription,omitempty"`
	Currency                  string        `json:"currency,omitempty"`
	Amount                    int64         `json:"amount"`
	OrderTotalWithoutShipping int64         `json:"orderTotalWithoutShipping,omitempty"`
	OrderShippingPrice        int64         `json:"orderShippingPrice,omitempty"`
	OrderDiscount             int64         `json:"orderDiscount,omitempty"`
	OrderFOLanguage           string        `json:"orderFOLanguage,omitempty"`
	OrderCartContent          []CartProduct `json:"orderCartContent,omitempty"`
	ShippingType              string        `json:"shippingType,omitempty"`
	ShippingName              string        `json:"shippingName,omitempty"`
	PaymentType               string        `json:"paymentType,omitempty"`
	Provider                  string        `json:"provider,omitempty"`
	Operation                 string        `json:"operation,omitempty"`
	PaymentMode               string        `json:"paymentMode,omitempty"`
	Secure3D                  *bool         `json:"secure3d,omitempty"`
	OfferID                   int64         `json:"offerID,omitempty"`
	SubscriptionType          string        `json:"subscriptionType,omitempty"`
	TrialPeriod               string        `json:"trialPeriod,omitempty"`
	RebillAmount              int64         `json:"rebillAmount,omitempty"`
	RebillPeriod              string        `json:"rebillPeriod,omitempty"`
	RebillMaxIteration        int64         `json:"rebillMaxIteration,omitempty"`
	CtrlCustomData            string        `json:"ctrlCustomData,omitempty"`
	CtrlRedirectURL           string        `json:"ctrlRedirectURL,omitempty"`
	CtrlCallbackURL           string        `json:"ctrlCallbackURL,omitempty"`
	TimeOut                   string        `json:"timeOut,omitempty"`
	MerchantNotification      *bool         `json:"merchantNotification,omitempty"`
	MerchantNotificationTo    string        `json:"merchantNotificationTo,omitempty"`
	MerchantNotificationLang  string        `json:"merchantNotificationLang,omitempty"`
	ThemeID                   int64         `json:"themeID,omitempty"`
}

// requestPayload assembles the wire form. Fields that were never set are
// dropped by omitempty; the "NA"/"ZZ" getter placeholders intentionally do
// not reach the wire, matching the behavior of serializing raw values only
// when present.
func (t *Transaction) requestPayload() requestPayload {
	return requestPayload{
		APIVersion:                APIVersion,
		ShopperID:                 t.shopperID,
		ShopperEmail:              t.shopperEmail,
		ShipToFirstName:           t.shipToFirstName,
		ShipToLastName:            t.shipToLastName,
		ShipToCompany:             t.shipToCompany,
		ShipToPhone:               t.shipToPhone,
		ShipToAddress:             t.shipToAddress,
		ShipToState:               t.shipToState,
		ShipToZipcode:             t.shipToZipcode,
		ShipToCity:                t.shipToCity,
		ShipToCountryCode:         t.shipToCountryCode,
		ShopperFirstName:          t.shopperFirstName,
		ShopperLastName:           t.shopperLastName,
		ShopperPhone:              t.shopperPhone,
		ShopperAddress:            t.shopperAddress,
		ShopperState:              t.shopperState,
		ShopperZipcode:            t.shopperZipcode,
		ShopperCity:               t.shopperCity,
		ShopperCountryCode:        t.shopperCountryCode,
		ShopperBirthDate:          t.shopperBirthDate,
		ShopperIDNumber:           t.shopperIDNumber,
		ShopperCompany:            t.shopperCompany,
		ShopperLoyaltyProgram:     t.shopperLoyaltyProgram,
		OrderID:                   t.orderID,
		OrderDescription:          t.orderDescription,
		Currency:                  t.currency,
		Amount:                    t.amount,
		OrderTotalWithoutShipping: t.orderTotalWithoutShipping,
		OrderShippingPrice:        t.orderShippingPrice,
		OrderDiscount:             t.orderDiscount,
		OrderFOLanguage:           t.orderFOLanguage,
		OrderCartContent:          t.orderCartContent,
		ShippingType:              t.shippingType,
		ShippingName:              t.shippingName,
		PaymentType:               t.paymentType,
		Provider:                  t.provider,
		Operation:                 t.operation,
		PaymentMode:               t.paymentMode,
		Secure3D:                  t.secure3d,
		OfferID:                   t.offerID,
		SubscriptionType:          t.subscriptionType,
		TrialPeriod:               t.trialPeriod,
		RebillAmount:              t.rebillAmount,
		RebillPeriod:              t.rebillPeriod,
		RebillMaxIteration:        t.rebillMaxIteration,
		CtrlCustomData:            t.ctrlCustomData,
		CtrlRedirectURL:           t.ctrlRedirectURL,
		CtrlCallbackURL:           t.ctrlCallbackURL,
		TimeOut:                   t.timeOut,
		MerchantNotification:      t.merchantNotification,
		MerchantNotificationTo:    t.merchantNotificationTo,
		MerchantNotificationLang:  t.merchantNotificationLang,
		ThemeID:                   t.themeID,
	}
}

func orNA(s string) string {
	if s == "" {
		return Unavailable
	}
	return s
}
