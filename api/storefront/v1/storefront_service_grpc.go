package storefrontv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName — полное имя gRPC-сервиса.
const ServiceName = "storefront.v1.StorefrontService"

const (
	StorefrontService_GetCart_FullMethodName        = "/" + ServiceName + "/GetCart"
	StorefrontService_AddItem_FullMethodName        = "/" + ServiceName + "/AddItem"
	StorefrontService_UpdateItem_FullMethodName     = "/" + ServiceName + "/UpdateItem"
	StorefrontService_RemoveItem_FullMethodName     = "/" + ServiceName + "/RemoveItem"
	StorefrontService_ClearCart_FullMethodName      = "/" + ServiceName + "/ClearCart"
	StorefrontService_ApplyPromo_FullMethodName     = "/" + ServiceName + "/ApplyPromo"
	StorefrontService_PlaceOrder_FullMethodName     = "/" + ServiceName + "/PlaceOrder"
	StorefrontService_ListOrders_FullMethodName     = "/" + ServiceName + "/ListOrders"
	StorefrontService_GetOrder_FullMethodName       = "/" + ServiceName + "/GetOrder"
	StorefrontService_ListPromoCodes_FullMethodName = "/" + ServiceName + "/ListPromoCodes"
	StorefrontService_ListProducts_FullMethodName   = "/" + ServiceName + "/ListProducts"
	StorefrontService_GetProduct_FullMethodName     = "/" + ServiceName + "/GetProduct"
	StorefrontService_AddProduct_FullMethodName     = "/" + ServiceName + "/AddProduct"
)

// StorefrontServiceClient — клиент витрины. Все вызовы идут с JSON-кодеком.
type StorefrontServiceClient interface {
	GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*CartResponse, error)
	AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartResponse, error)
	UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*CartResponse, error)
	RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartResponse, error)
	ClearCart(ctx context.Context, in *ClearCartRequest, opts ...grpc.CallOption) (*CartResponse, error)
	ApplyPromo(ctx context.Context, in *ApplyPromoRequest, opts ...grpc.CallOption) (*CartResponse, error)
	PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	ListPromoCodes(ctx context.Context, in *ListPromoCodesRequest, opts ...grpc.CallOption) (*ListPromoCodesResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	AddProduct(ctx context.Context, in *AddProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
}

type storefrontServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStorefrontServiceClient создаёт клиента поверх соединения.
func NewStorefrontServiceClient(cc grpc.ClientConnInterface) StorefrontServiceClient {
	return &storefrontServiceClient{cc: cc}
}

func (c *storefrontServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := make([]grpc.CallOption, 0, len(opts)+1)
	callOpts = append(callOpts, grpc.CallContentSubtype(CodecName))
	callOpts = append(callOpts, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *storefrontServiceClient) GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, StorefrontService_GetCart_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, StorefrontService_AddItem_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, StorefrontService_UpdateItem_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, StorefrontService_RemoveItem_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) ClearCart(ctx context.Context, in *ClearCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, StorefrontService_ClearCart_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) ApplyPromo(ctx context.Context, in *ApplyPromoRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	if err := c.invoke(ctx, StorefrontService_ApplyPromo_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.invoke(ctx, StorefrontService_PlaceOrder_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	out := new(ListOrdersResponse)
	if err := c.invoke(ctx, StorefrontService_ListOrders_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.invoke(ctx, StorefrontService_GetOrder_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) ListPromoCodes(ctx context.Context, in *ListPromoCodesRequest, opts ...grpc.CallOption) (*ListPromoCodesResponse, error) {
	out := new(ListPromoCodesResponse)
	if err := c.invoke(ctx, StorefrontService_ListPromoCodes_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	out := new(ListProductsResponse)
	if err := c.invoke(ctx, StorefrontService_ListProducts_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := c.invoke(ctx, StorefrontService_GetProduct_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontServiceClient) AddProduct(ctx context.Context, in *AddProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := c.invoke(ctx, StorefrontService_AddProduct_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// StorefrontServiceServer — серверная сторона витрины.
type StorefrontServiceServer interface {
	// GetCart возвращает корзину сессии с итогами.
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
	// AddItem добавляет товар в корзину.
	AddItem(context.Context, *AddItemRequest) (*CartResponse, error)
	// UpdateItem задаёт количество позиции; 0 удаляет её.
	UpdateItem(context.Context, *UpdateItemRequest) (*CartResponse, error)
	// RemoveItem удаляет позицию корзины.
	RemoveItem(context.Context, *RemoveItemRequest) (*CartResponse, error)
	// ClearCart очищает корзину.
	ClearCart(context.Context, *ClearCartRequest) (*CartResponse, error)
	// ApplyPromo применяет промокод к непустой корзине.
	ApplyPromo(context.Context, *ApplyPromoRequest) (*CartResponse, error)
	// PlaceOrder оформляет заказ из корзины сессии.
	PlaceOrder(context.Context, *PlaceOrderRequest) (*OrderResponse, error)
	// ListOrders возвращает заказы в порядке оформления.
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	// GetOrder возвращает заказ по идентификатору.
	GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error)
	// ListPromoCodes возвращает справочник промокодов.
	ListPromoCodes(context.Context, *ListPromoCodesRequest) (*ListPromoCodesResponse, error)
	// ListProducts ищет товары каталога.
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	// GetProduct возвращает товар каталога.
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	// AddProduct добавляет товар в каталог.
	AddProduct(context.Context, *AddProductRequest) (*ProductResponse, error)
}

// UnimplementedStorefrontServiceServer отвечает Unimplemented на все методы.
type UnimplementedStorefrontServiceServer struct{}

func (UnimplementedStorefrontServiceServer) GetCart(context.Context, *GetCartRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCart not implemented")
}

func (UnimplementedStorefrontServiceServer) AddItem(context.Context, *AddItemRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItem not implemented")
}

func (UnimplementedStorefrontServiceServer) UpdateItem(context.Context, *UpdateItemRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateItem not implemented")
}

func (UnimplementedStorefrontServiceServer) RemoveItem(context.Context, *RemoveItemRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveItem not implemented")
}

func (UnimplementedStorefrontServiceServer) ClearCart(context.Context, *ClearCartRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClearCart not implemented")
}

func (UnimplementedStorefrontServiceServer) ApplyPromo(context.Context, *ApplyPromoRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ApplyPromo not implemented")
}

func (UnimplementedStorefrontServiceServer) PlaceOrder(context.Context, *PlaceOrderRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PlaceOrder not implemented")
}

func (UnimplementedStorefrontServiceServer) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOrders not implemented")
}

func (UnimplementedStorefrontServiceServer) GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}

func (UnimplementedStorefrontServiceServer) ListPromoCodes(context.Context, *ListPromoCodesRequest) (*ListPromoCodesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPromoCodes not implemented")
}

func (UnimplementedStorefrontServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}

func (UnimplementedStorefrontServiceServer) GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}

func (UnimplementedStorefrontServiceServer) AddProduct(context.Context, *AddProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddProduct not implemented")
}

// RegisterStorefrontServiceServer регистрирует реализацию на gRPC-сервере.
func RegisterStorefrontServiceServer(s grpc.ServiceRegistrar, srv StorefrontServiceServer) {
	s.RegisterService(&StorefrontService_ServiceDesc, srv)
}

func _StorefrontService_GetCart_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).GetCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_GetCart_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).GetCart(ctx, req.(*GetCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_AddItem_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).AddItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_AddItem_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).AddItem(ctx, req.(*AddItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_UpdateItem_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).UpdateItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_UpdateItem_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).UpdateItem(ctx, req.(*UpdateItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_RemoveItem_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RemoveItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).RemoveItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_RemoveItem_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).RemoveItem(ctx, req.(*RemoveItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_ClearCart_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ClearCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).ClearCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_ClearCart_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).ClearCart(ctx, req.(*ClearCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_ApplyPromo_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ApplyPromoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).ApplyPromo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_ApplyPromo_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).ApplyPromo(ctx, req.(*ApplyPromoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_PlaceOrder_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlaceOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).PlaceOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_PlaceOrder_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).PlaceOrder(ctx, req.(*PlaceOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_ListOrders_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListOrdersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).ListOrders(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_ListOrders_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).ListOrders(ctx, req.(*ListOrdersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_GetOrder_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).GetOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_GetOrder_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).GetOrder(ctx, req.(*GetOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_ListPromoCodes_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListPromoCodesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).ListPromoCodes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_ListPromoCodes_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).ListPromoCodes(ctx, req.(*ListPromoCodesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_ListProducts_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListProductsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_ListProducts_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).ListProducts(ctx, req.(*ListProductsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_GetProduct_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_GetProduct_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).GetProduct(ctx, req.(*GetProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorefrontService_AddProduct_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServiceServer).AddProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorefrontService_AddProduct_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorefrontServiceServer).AddProduct(ctx, req.(*AddProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// StorefrontService_ServiceDesc описывает сервис для grpc.Server.
var StorefrontService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCart",
			Handler:    _StorefrontService_GetCart_Handler,
		},
		{
			MethodName: "AddItem",
			Handler:    _StorefrontService_AddItem_Handler,
		},
		{
			MethodName: "UpdateItem",
			Handler:    _StorefrontService_UpdateItem_Handler,
		},
		{
			MethodName: "RemoveItem",
			Handler:    _StorefrontService_RemoveItem_Handler,
		},
		{
			MethodName: "ClearCart",
			Handler:    _StorefrontService_ClearCart_Handler,
		},
		{
			MethodName: "ApplyPromo",
			Handler:    _StorefrontService_ApplyPromo_Handler,
		},
		{
			MethodName: "PlaceOrder",
			Handler:    _StorefrontService_PlaceOrder_Handler,
		},
		{
			MethodName: "ListOrders",
			Handler:    _StorefrontService_ListOrders_Handler,
		},
		{
			MethodName: "GetOrder",
			Handler:    _StorefrontService_GetOrder_Handler,
		},
		{
			MethodName: "ListPromoCodes",
			Handler:    _StorefrontService_ListPromoCodes_Handler,
		},
		{
			MethodName: "ListProducts",
			Handler:    _StorefrontService_ListProducts_Handler,
		},
		{
			MethodName: "GetProduct",
			Handler:    _StorefrontService_GetProduct_Handler,
		},
		{
			MethodName: "AddProduct",
			Handler:    _StorefrontService_AddProduct_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront_service",
}
