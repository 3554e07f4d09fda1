package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	MidtransSnapClient    snap.Client
	MidtransCoreAPIClient coreapi.Client
)

func InitMidtransClients() {
	MidtransSnapClient.New(LoadENV.MidtransServerKey, midtrans.Sandbox)
	MidtransCoreAPIClient.New(LoadENV.MidtransServerKey, midtrans.Sandbox)
	midtrans.ClientKey = LoadENV.MidtransClientKey
	midtrans.ServerKey = LoadENV.MidtransServerKey
	midtrans.Environment = midtrans.Sandbox
	log.Println("Midtrans clients initialized.")
}
