package test

// CallCount returns the total number of transport calls of any kind, which is
// what the "no remote call happened" assertions check.
func CallCount(mock *TransportMock) int {
	return len(mock.DeleteCalls()) +
		len(mock.GetCalls()) +
		len(mock.PatchCalls()) +
		len(mock.PostCalls()) +
		len(mock.PutCalls()) +
		len(mock.SendFileCalls())
}
