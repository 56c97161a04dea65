package solver

/*
	Cross-process combination of the coefficient accumulators. The
	discipline everywhere: reduce the raw force/moment sums, then
	re-derive the ratio coefficients (CEff, CMerit) from the reduced
	sums. Reducing the ratios themselves would average per-rank ratios,
	which is not the ratio of the summed forces.

	Every rank must enter these reductions together; a rank skipping a
	collective deadlocks the group, which is a caller contract
	violation, not a handled condition.
*/

// reduceAllBound sums a global accumulator across ranks and re-derives
// its ratio coefficients
func (s *FVMFlowSolver) reduceAllBound(c *AeroCoeffs) {
	buf := []float64{
		c.CD, c.CL, c.CSF,
		c.CFx, c.CFy, c.CFz,
		c.CMx, c.CMy, c.CMz,
		c.CoPx, c.CoPy, c.CoPz,
		c.CT, c.CQ,
	}
	s.Red.SumFloat64s(buf)
	c.CD, c.CL, c.CSF = buf[0], buf[1], buf[2]
	c.CFx, c.CFy, c.CFz = buf[3], buf[4], buf[5]
	c.CMx, c.CMy, c.CMz = buf[6], buf[7], buf[8]
	c.CoPx, c.CoPy, c.CoPz = buf[9], buf[10], buf[11]
	c.CT, c.CQ = buf[12], buf[13]
	c.CEff = c.CL / (c.CD + EPS)
	c.CMerit = c.CT / (c.CQ + EPS)
}

// reduceSurface sums the per-monitored-surface arrays in place and
// re-derives CEff for every slot from the reduced sums
func (s *FVMFlowSolver) reduceSurface(sc *AeroCoeffsArray) {
	s.Red.SumFloat64s(sc.CL)
	s.Red.SumFloat64s(sc.CD)
	s.Red.SumFloat64s(sc.CSF)
	for iMon := 0; iMon < sc.Size(); iMon++ {
		sc.CEff[iMon] = sc.CL[iMon] / (sc.CD[iMon] + EPS)
	}
	s.Red.SumFloat64s(sc.CFx)
	s.Red.SumFloat64s(sc.CFy)
	s.Red.SumFloat64s(sc.CFz)
	s.Red.SumFloat64s(sc.CMx)
	s.Red.SumFloat64s(sc.CMy)
	s.Red.SumFloat64s(sc.CMz)
}
