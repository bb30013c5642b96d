package onix3

import "encoding/xml"

// XML shapes for the ONIX 3.0 reference schema. Struct field order fixes the
// element order, which the schema mandates and which keeps output byte-stable.

type onixMessage struct {
	XMLName      xml.Name  `xml:"ONIXMessage"`
	Release      string    `xml:"release,attr"`
	Namespace    string    `xml:"xmlns,attr"`
	Header       header    `xml:"Header"`
	Products     []product `xml:"Product"`
}

type header struct {
	Sender       sender `xml:"Sender"`
	SentDateTime string `xml:"SentDateTime"`
}

type sender struct {
	SenderName string `xml:"SenderName"`
}

type product struct {
	RecordReference    string              `xml:"RecordReference"`
	NotificationType   string              `xml:"NotificationType"`
	RecordSourceType   string              `xml:"RecordSourceType"`
	ProductIdentifiers []productIdentifier `xml:"ProductIdentifier"`
	DescriptiveDetail  descriptiveDetail   `xml:"DescriptiveDetail"`
	PublishingDetail   publishingDetail    `xml:"PublishingDetail"`
	ProductSupplies    []productSupply     `xml:"ProductSupply"`
}

type productIdentifier struct {
	ProductIDType string `xml:"ProductIDType"`
	IDValue       string `xml:"IDValue"`
}

type descriptiveDetail struct {
	ProductComposition string        `xml:"ProductComposition"`
	ProductForm        string        `xml:"ProductForm"`
	ProductFormDetail  string        `xml:"ProductFormDetail,omitempty"`
	EpubLicense        *epubLicense  `xml:"EpubLicense,omitempty"`
	Collections        []collection  `xml:"Collection,omitempty"`
	TitleDetail        titleDetail   `xml:"TitleDetail"`
	Contributors       []contributor `xml:"Contributor,omitempty"`
	Languages          []language    `xml:"Language,omitempty"`
	Extents            []extent      `xml:"Extent,omitempty"`
	Subjects           []subject     `xml:"Subject,omitempty"`
}

type epubLicense struct {
	EpubLicenseName       string                 `xml:"EpubLicenseName"`
	EpubLicenseExpression *epubLicenseExpression `xml:"EpubLicenseExpression,omitempty"`
}

type epubLicenseExpression struct {
	EpubLicenseExpressionType string `xml:"EpubLicenseExpressionType"`
	EpubLicenseExpressionLink string `xml:"EpubLicenseExpressionLink"`
}

type collection struct {
	CollectionType     string              `xml:"CollectionType"`
	CollectionSequence *collectionSequence `xml:"CollectionSequence,omitempty"`
	TitleDetail        titleDetail         `xml:"TitleDetail"`
}

type collectionSequence struct {
	CollectionSequenceType   string `xml:"CollectionSequenceType"`
	CollectionSequenceNumber string `xml:"CollectionSequenceNumber"`
}

type titleDetail struct {
	TitleType    string       `xml:"TitleType"`
	TitleElement titleElement `xml:"TitleElement"`
}

type titleElement struct {
	TitleElementLevel string `xml:"TitleElementLevel"`
	TitleText         string `xml:"TitleText"`
	Subtitle          string `xml:"Subtitle,omitempty"`
}

type contributor struct {
	SequenceNumber  string           `xml:"SequenceNumber"`
	ContributorRole string           `xml:"ContributorRole"`
	NameIdentifiers []nameIdentifier `xml:"NameIdentifier,omitempty"`
	PersonName      string           `xml:"PersonName"`
	NamesBeforeKey  string           `xml:"NamesBeforeKey,omitempty"`
	KeyNames        string           `xml:"KeyNames"`
}

type nameIdentifier struct {
	NameIDType string `xml:"NameIDType"`
	IDValue    string `xml:"IDValue"`
}

type language struct {
	LanguageRole string `xml:"LanguageRole"`
	LanguageCode string `xml:"LanguageCode"`
}

type extent struct {
	ExtentType  string `xml:"ExtentType"`
	ExtentValue string `xml:"ExtentValue"`
	ExtentUnit  string `xml:"ExtentUnit"`
}

type subject struct {
	SubjectSchemeIdentifier string `xml:"SubjectSchemeIdentifier"`
	SubjectCode             string `xml:"SubjectCode,omitempty"`
	SubjectHeadingText      string `xml:"SubjectHeadingText,omitempty"`
}

type publishingDetail struct {
	Imprint           imprint          `xml:"Imprint"`
	Publisher         publisher        `xml:"Publisher"`
	CityOfPublication string           `xml:"CityOfPublication,omitempty"`
	PublishingStatus  string           `xml:"PublishingStatus"`
	PublishingDates   []publishingDate `xml:"PublishingDate,omitempty"`
}

type imprint struct {
	ImprintName string `xml:"ImprintName"`
}

type publisher struct {
	PublishingRole string   `xml:"PublishingRole"`
	PublisherName  string   `xml:"PublisherName"`
	Websites       []website `xml:"Website,omitempty"`
}

type website struct {
	WebsiteRole string `xml:"WebsiteRole"`
	WebsiteLink string `xml:"WebsiteLink"`
}

type publishingDate struct {
	PublishingDateRole string `xml:"PublishingDateRole"`
	Date               string `xml:"Date"`
}

type productSupply struct {
	SupplyDetail supplyDetail `xml:"SupplyDetail"`
}

type supplyDetail struct {
	Supplier            supplier `xml:"Supplier"`
	ProductAvailability string   `xml:"ProductAvailability"`
	UnpricedItemType    string   `xml:"UnpricedItemType,omitempty"`
	Prices              []price  `xml:"Price,omitempty"`
}

type supplier struct {
	SupplierRole string `xml:"SupplierRole"`
	SupplierName string `xml:"SupplierName"`
}

type price struct {
	PriceType    string `xml:"PriceType"`
	PriceAmount  string `xml:"PriceAmount"`
	CurrencyCode string `xml:"CurrencyCode"`
}
